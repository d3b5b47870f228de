package config

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

const (
	requestTimeoutEnvVar = "API_REQUEST_TIMEOUT"
	retryLimitEnvVar     = "API_RETRY_LIMIT"
	retryMethodsEnvVar   = "API_RETRY_METHODS"
)

type APIConfig interface {
	GetRequestTimeout() time.Duration
	GetRetryLimit() int
	GetRetryMethods() []string
	GetRetryStatusCodes() []int
}

type API struct{}

var _ APIConfig = API{}

// GetRequestTimeout bounds each attempt, not the whole retried call.
func (API) GetRequestTimeout() time.Duration {
	value := GetEnv(requestTimeoutEnvVar, "10s")
	d, err := time.ParseDuration(value)
	if err != nil || d <= 0 {
		log.Warn().Str(requestTimeoutEnvVar, value).Msg("invalid duration, using 10s")
		return 10 * time.Second
	}
	return d
}

// GetRetryLimit is the number of attempts after the first one.
func (API) GetRetryLimit() int {
	value := GetEnv(retryLimitEnvVar, "2")
	n, err := strconv.Atoi(value)
	if err != nil || n < 0 {
		log.Warn().Str(retryLimitEnvVar, value).Msg("invalid retry limit, using 2")
		return 2
	}
	return n
}

// GetRetryMethods includes POST and PATCH by default. The backend is assumed to
// tolerate a replayed write after a 500; set API_RETRY_METHODS=GET,PUT,DELETE
// if it does not.
func (API) GetRetryMethods() []string {
	value := GetEnv(retryMethodsEnvVar, "GET,POST,PUT,DELETE,PATCH")
	methods := []string{}
	for _, m := range strings.Split(value, ",") {
		if m = strings.ToUpper(strings.TrimSpace(m)); m != "" {
			methods = append(methods, m)
		}
	}
	return methods
}

func (API) GetRetryStatusCodes() []int {
	return []int{http.StatusInternalServerError}
}
