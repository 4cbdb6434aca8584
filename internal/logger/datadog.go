package logger

import (
	"bytes"
	"context"
	"net/http"
	"os"
	"time"

	"github.com/DataDog/datadog-api-client-go/v2/api/datadog"
	"github.com/DataDog/datadog-api-client-go/v2/api/datadogV2"
	"github.com/pkg/errors"
)

const (
	submitLogOperation    = "v2.LogsApi.SubmitLog"
	defaultDataDogTimeout = 5 * time.Second
	dataDogSource         = "go"
)

// DataDogWriter sends each log line as one entry to the datadog logs intake.
type DataDogWriter struct {
	api      *datadogV2.LogsApi
	apiKey   string
	site     string
	service  string
	hostname string
	tags     string
	timeout  time.Duration
}

// NewDataDogWriter builds a writer from cfg.DataDog.
func NewDataDogWriter(cfg Log) (*DataDogWriter, error) {
	dd := cfg.DataDog

	if dd.APIKey == "" {
		return nil, ErrDataDogAPIKeyIsEmpty
	}

	timeout := dd.Timeout
	if timeout <= 0 {
		timeout = defaultDataDogTimeout
	}

	configuration := datadog.NewConfiguration()
	configuration.HTTPClient = &http.Client{Timeout: timeout}

	if len(dd.Servers) > 0 {
		configuration.Servers = dd.Servers
		configuration.OperationServers[submitLogOperation] = dd.Servers
	}

	service := dd.ServiceName
	if service == "" {
		service = cfg.ServiceName
	}

	hostname, _ := os.Hostname()

	w := &DataDogWriter{
		api:      datadogV2.NewLogsApi(datadog.NewAPIClient(configuration)),
		apiKey:   dd.APIKey,
		site:     dd.Site,
		service:  service,
		hostname: hostname,
		timeout:  timeout,
	}

	if cfg.LogEnv != "" {
		w.tags = "env:" + cfg.LogEnv
	}

	return w, nil
}

// Write implements io.Writer.
func (w *DataDogWriter) Write(p []byte) (int, error) {
	ctx, cancel := context.WithTimeout(context.Background(), w.timeout)
	defer cancel()

	ctx = context.WithValue(ctx, datadog.ContextAPIKeys, map[string]datadog.APIKey{
		"apiKeyAuth": {Key: w.apiKey},
	})

	if w.site != "" {
		ctx = context.WithValue(ctx, datadog.ContextServerVariables, map[string]string{"site": w.site})
	}

	item := datadogV2.HTTPLogItem{
		Ddsource: datadog.PtrString(dataDogSource),
		Hostname: datadog.PtrString(w.hostname),
		Message:  string(bytes.TrimSpace(p)),
		Service:  datadog.PtrString(w.service),
	}

	if w.tags != "" {
		item.Ddtags = datadog.PtrString(w.tags)
	}

	_, _, err := w.api.SubmitLog(ctx, []datadogV2.HTTPLogItem{item}, *datadogV2.NewSubmitLogOptionalParameters())
	if err != nil {
		return 0, errors.Wrap(err, "failed to submit log to datadog")
	}

	return len(p), nil
}
