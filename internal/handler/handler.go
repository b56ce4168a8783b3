// Package handler runs one page invocation: read the environment, connect,
// list the messages and report which pod and node served them.
package handler

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/Shugur-Network/podreader/internal/config"
	"github.com/Shugur-Network/podreader/internal/domain"
	apperrors "github.com/Shugur-Network/podreader/internal/errors"
	"github.com/Shugur-Network/podreader/internal/logger"
	"github.com/Shugur-Network/podreader/internal/metrics"
	"github.com/Shugur-Network/podreader/internal/render"
	"github.com/Shugur-Network/podreader/internal/storage"
	"go.uber.org/zap"
)

// ParamsSource yields the connection parameters for one invocation.
type ParamsSource interface {
	ConnectionParams() config.ConnectionParams
}

// IdentityResolver reports the serving pod and node.
type IdentityResolver interface {
	Resolve(params config.ConnectionParams) domain.PodIdentity
}

// Page is a fully rendered invocation.
type Page struct {
	Body    []byte
	Outcome string
	Rows    int
}

// Handler holds no per-request state; every Invoke starts from scratch.
type Handler struct {
	env      ParamsSource
	dialer   domain.Dialer
	identity IdentityResolver
}

// New builds a Handler.
func New(env ParamsSource, dialer domain.Dialer, identity IdentityResolver) *Handler {
	return &Handler{
		env:      env,
		dialer:   dialer,
		identity: identity,
	}
}

// Invoke renders one page into memory. A connect failure is page content;
// any failure after connecting is returned as an error and no page is
// produced.
func (h *Handler) Invoke(ctx context.Context, medium render.Medium) (*Page, error) {
	start := time.Now()
	params := h.env.ConnectionParams()
	log := logger.FromContext(ctx).With(
		zap.String("pod_name", params.PodName),
		zap.String("node", params.NodeName),
		zap.String("medium", medium.String()),
	)

	page, err := h.invoke(ctx, params, medium)

	outcome, rows := metrics.OutcomeQueryFailed, 0
	if page != nil {
		outcome, rows = page.Outcome, page.Rows
	}
	elapsed := time.Since(start)
	metrics.ObserveRequest(outcome, elapsed.Seconds(), rows)

	fields := []zap.Field{
		zap.String("outcome", outcome),
		zap.Int("rows", rows),
		zap.Duration("duration", elapsed),
	}
	switch {
	case err != nil:
		log.Error("Page invocation failed", append(fields, zap.Error(err))...)
	case outcome == metrics.OutcomeConnectFailed:
		log.Warn("Page rendered without data", fields...)
	default:
		log.Info("Page rendered", fields...)
	}
	return page, err
}

func (h *Handler) invoke(ctx context.Context, params config.ConnectionParams, medium render.Medium) (*Page, error) {
	var buf bytes.Buffer
	w := render.NewWriter(&buf, medium)

	store, err := h.dialer.Dial(ctx, params)
	if err != nil {
		if !errors.Is(err, storage.ErrConnect) {
			return nil, fmt.Errorf("dial: %w", err)
		}
		w.ConnectFailed(err.Error())
		if err := w.Err(); err != nil {
			return nil, err
		}
		return &Page{Body: buf.Bytes(), Outcome: metrics.OutcomeConnectFailed}, nil
	}
	defer func() {
		if cerr := store.Close(); cerr != nil {
			logger.FromContext(ctx).Warn("Failed to close MySQL connection", zap.Error(cerr))
		}
	}()

	rows, err := writeMessages(ctx, store, w)
	if err != nil {
		return nil, err
	}
	if rows == 0 {
		w.NoResults()
	}
	w.Identity(h.identity.Resolve(params))
	if err := w.Err(); err != nil {
		return nil, err
	}

	return &Page{Body: buf.Bytes(), Outcome: metrics.OutcomeRendered, Rows: rows}, nil
}

func writeMessages(ctx context.Context, store domain.MessageStore, w *render.Writer) (int, error) {
	cursor, err := store.Messages(ctx)
	if err != nil {
		return 0, err
	}
	defer cursor.Close()

	rows := 0
	for cursor.Next() {
		w.Message(cursor.Message())
		rows++
	}
	if err := cursor.Err(); err != nil {
		return rows, err
	}
	return rows, nil
}

// ServePage answers an HTTP request with the HTML page. The request path,
// query and body are ignored.
func (h *Handler) ServePage(w http.ResponseWriter, r *http.Request) error {
	page, err := h.Invoke(r.Context(), render.HTML)
	if err != nil {
		return apperrors.QueryError(err)
	}

	w.Header().Set("Content-Type", render.HTML.ContentType())
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(page.Body); err != nil {
		logger.FromContext(r.Context()).Debug("Client went away mid-response", zap.Error(err))
	}
	return nil
}
