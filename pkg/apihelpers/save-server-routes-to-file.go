package apihelpers

import (
	"fmt"
	"log/slog"
	"os"
	"sort"
	"strings"

	"github.com/gin-gonic/gin"
)

// WriteRoutesToFile dumps the registered routes of the router into a text
// file, one "METHOD<TAB>PATH" line per route. Used in debug mode only.
func WriteRoutesToFile(router *gin.Engine, filename string) {
	routes := router.Routes()
	sort.Slice(routes, func(i, j int) bool {
		if routes[i].Path == routes[j].Path {
			return routes[i].Method < routes[j].Method
		}
		return routes[i].Path < routes[j].Path
	})

	var sb strings.Builder
	for _, route := range routes {
		fmt.Fprintf(&sb, "%s\t%s\n", route.Method, route.Path)
	}

	if err := os.WriteFile(filename, []byte(sb.String()), 0644); err != nil {
		slog.Error("could not save route list", slog.String("filename", filename), slog.String("error", err.Error()))
	}
}
