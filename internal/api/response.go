// Package api is the HTTP surface: server-rendered pages built from the
// component registry, the fragment and JSON endpoints the behavior modules
// call, the component preview and the health probes.
//
// Handlers report failures with middleware.Abort; the error handler
// middleware writes the JSON envelope.
package api

import (
	"context"
	"io"
	"net/http"

	"github.com/a-h/templ"
	"github.com/gin-gonic/gin"

	"github.com/ericfisherdev/happyplace/internal/api/middleware"
	"github.com/ericfisherdev/happyplace/internal/domain"
	"github.com/ericfisherdev/happyplace/internal/ui/html"
)

// SuccessResponse returns a standardized success response.
func SuccessResponse(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    data,
	})
}

// CreatedResponse returns a standardized created response.
func CreatedResponse(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    data,
	})
}

// HTMLResponse renders comp with ctx and writes it as an HTML document or
// fragment.
func HTMLResponse(c *gin.Context, ctx context.Context, status int, comp templ.Component) {
	out, err := html.Render(ctx, comp)
	if err != nil {
		middleware.Abort(c, domain.NewInternalError("RENDER_FAILED", "Markup could not be rendered", err))
		return
	}
	c.Data(status, "text/html; charset=utf-8", []byte(out))
}

// writerComponent adapts a string producer to templ.Component.
func writerComponent(fn func(ctx context.Context) (string, error)) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		out, err := fn(ctx)
		if err != nil {
			return err
		}
		_, err = io.WriteString(w, out)
		return err
	})
}
