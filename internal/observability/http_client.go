package observability

import (
	"net/http"
	"net/url"

	sentryhttpclient "github.com/getsentry/sentry-go/httpclient"
)

// WrapRoundTripper instruments outbound requests with sentry tracing.
// Trace headers are only propagated to the FreshMandi API host.
func WrapRoundTripper(base http.RoundTripper, apiBaseURL string) http.RoundTripper {
	return sentryhttpclient.NewSentryRoundTripper(
		base,
		sentryhttpclient.WithTracePropagationTargets(tracePropagationTargets(apiBaseURL)),
	)
}

func tracePropagationTargets(apiBaseURL string) []string {
	parsed, err := url.Parse(apiBaseURL)
	if err != nil || parsed.Hostname() == "" {
		return nil
	}
	return []string{parsed.Hostname()}
}
