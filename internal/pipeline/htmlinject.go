package pipeline

import (
	"context"
	"strings"
)

// ThemeInjector defines the contract for theme CSS injection into HTML.
type ThemeInjector interface {
	InjectTheme(ctx context.Context, htmlContent, css string) string
}

// ThemeInjection injects theme CSS as a <style> block into HTML content.
type ThemeInjection struct{}

// InjectTheme inserts a <style> block holding css before </head>. Without a
// head it goes right after <body>, and without either it is prepended.
// Page geometry lives in the body <style>, so it overrides theme rules for
// @page. CSS is sanitized so it cannot close the block it is placed in.
func (s *ThemeInjection) InjectTheme(ctx context.Context, htmlContent, css string) string {
	if css == "" || ctx.Err() != nil {
		return htmlContent
	}

	styleBlock := "<style>" + sanitizeCSS(css) + "</style>"
	lowerHTML := strings.ToLower(htmlContent)

	if idx := strings.Index(lowerHTML, "</head>"); idx != -1 {
		return htmlContent[:idx] + styleBlock + htmlContent[idx:]
	}

	if idx := strings.Index(lowerHTML, "<body"); idx != -1 {
		if closeIdx := strings.Index(htmlContent[idx:], ">"); closeIdx != -1 {
			insertPos := idx + closeIdx + 1
			return htmlContent[:insertPos] + styleBlock + htmlContent[insertPos:]
		}
	}

	return styleBlock + htmlContent
}

// sanitizeCSS escapes "</" so the CSS cannot end its <style> element early.
func sanitizeCSS(css string) string {
	return strings.ReplaceAll(css, "</", `<\/`)
}
