package dashboard

import (
	"os"
	"strings"
)

const (
	// DefaultEChartsAssetsHost is where rendered pages load the ECharts runtime from.
	DefaultEChartsAssetsHost = "https://go-echarts.github.io/go-echarts-assets/assets/"
	// EnvEChartsAssetsHost overrides the assets host, e.g. to point at a self-hosted bucket.
	EnvEChartsAssetsHost = "OPSBOARD_ECHARTS_ASSETS"
)

// ResolveEChartsAssetsHost picks the assets host: the explicit value, then the
// environment override, then the public default.
func ResolveEChartsAssetsHost(explicit string) string {
	if host := strings.TrimSpace(explicit); host != "" {
		return ensureTrailingSlash(host)
	}
	if host := strings.TrimSpace(os.Getenv(EnvEChartsAssetsHost)); host != "" {
		return ensureTrailingSlash(host)
	}
	return DefaultEChartsAssetsHost
}

func ensureTrailingSlash(value string) string {
	if value == "" || strings.HasSuffix(value, "/") {
		return value
	}
	return value + "/"
}
