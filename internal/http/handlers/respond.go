package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// NotFound and store failures keep the short plain-text bodies the views
// never link to, but always with a real status code.

func RespondNotFound(ctx *gin.Context, message string) {
	ctx.String(http.StatusNotFound, message)
}

// RespondForbidden is the status-only rejection used by the delete
// endpoint, whose caller is a script, not a browser navigation.
func RespondForbidden(ctx *gin.Context) {
	ctx.Status(http.StatusForbidden)
}

// RespondForbiddenPage is the rendered variant for page navigations.
func RespondForbiddenPage(ctx *gin.Context) {
	ctx.HTML(http.StatusForbidden, "forbidden.html", gin.H{})
}

func RespondStoreFailure(ctx *gin.Context, message string) {
	ctx.String(http.StatusInternalServerError, message)
}

// RedirectTo answers a POST with a see-other so the browser lands on a GET.
func RedirectTo(ctx *gin.Context, location string) {
	ctx.Redirect(http.StatusSeeOther, location)
}
