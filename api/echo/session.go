package echoapi

import (
	"fmt"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/tayariapp/tayari/core"
	"github.com/tayariapp/tayari/core/export"
	"github.com/tayariapp/tayari/core/session"
)

type sessionApi struct {
	svc      session.Service
	validate *validator.Validate
}

func registerSessionAPI(g *echo.Group, jwt echo.MiddlewareFunc, svc session.Service, validate *validator.Validate) {
	api := sessionApi{
		svc:      svc,
		validate: validate,
	}

	sg := g.Group("/session", jwt)
	sg.GET("", api.retrieve)
	sg.PUT("", api.update)
	sg.DELETE("", api.reset)
	sg.GET("/export", api.export)
	sg.POST("/submit", api.submit)
}

// Handlers

func (api *sessionApi) retrieve(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context claims")
	}

	sess, err := api.svc.GetDraft(ctx.Request().Context(), claims.Subject)
	if err != nil {
		return errors.Wrap(err, "getting draft")
	}
	return ctx.JSON(http.StatusOK, SessionResponse{Session: sess, Progress: session.Progress(sess)})
}

func (api *sessionApi) update(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context claims")
	}

	var sess session.Session
	if err := ctx.Bind(&sess); err != nil {
		return errors.Wrap(err, "binding to Session")
	}
	if err := sess.Validate(api.validate); err != nil {
		return err
	}

	if err := api.svc.SaveDraft(ctx.Request().Context(), claims.Subject, sess); err != nil {
		return errors.Wrap(err, "saving draft")
	}
	draftSaves.Inc()

	return ctx.JSON(http.StatusOK, SessionResponse{Session: sess, Progress: session.Progress(sess)})
}

func (api *sessionApi) reset(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context claims")
	}

	sess, err := api.svc.ResetDraft(ctx.Request().Context(), claims.Subject)
	if err != nil {
		return errors.Wrap(err, "resetting draft")
	}
	return ctx.JSON(http.StatusOK, SessionResponse{Session: sess, Progress: session.Progress(sess)})
}

func (api *sessionApi) export(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context claims")
	}

	format := ctx.QueryParam("format")
	if format == "" {
		format = export.FormatHTML
	}
	if !(format == export.FormatHTML || format == export.FormatJSON) {
		return core.NewValidationError(nil, core.FieldError{Field: "format", Error: "must be one of: html, json"})
	}

	sess, err := api.svc.GetDraft(ctx.Request().Context(), claims.Subject)
	if err != nil {
		return errors.Wrap(err, "getting draft")
	}

	now := time.Now()
	var content []byte
	var contentType string
	switch format {
	case export.FormatJSON:
		content, err = export.JSON(sess)
		contentType = echo.MIMEApplicationJSONCharsetUTF8
	default:
		content, err = export.HTML(sess, now)
		contentType = echo.MIMETextHTMLCharsetUTF8
	}
	if err != nil {
		return errors.Wrap(err, "exporting session")
	}
	exports.WithLabelValues(format).Inc()

	ctx.Response().Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf("attachment; filename=%q", export.Filename(sess, format, now)))
	return ctx.Blob(http.StatusOK, contentType, content)
}

func (api *sessionApi) submit(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context claims")
	}

	sub, err := api.svc.Submit(ctx.Request().Context(), claims.Subject)
	if err != nil {
		return errors.Wrap(err, "submitting session")
	}
	submissions.Inc()

	return ctx.JSON(http.StatusOK, sub)
}

type SessionResponse struct {
	Session  session.Session `json:"session"`
	Progress int             `json:"progress"`
}
