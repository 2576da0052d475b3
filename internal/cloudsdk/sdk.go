package cloudsdk

import (
	"strings"
	"sync"
	"time"

	"github.com/imroc/req/v3"

	"github.com/guardianhealth/medmaintain/internal/version"
)

const (
	HeaderAPIKey = "apikey"
	HeaderPrefer = "Prefer"
)

// CloudSDK is the client for the cloud REST store. The configured API key
// is sent both as a raw `apikey` header and as a bearer token so the SDK
// works against gateways expecting either convention.
//
// The endpoint lives behind a lock and every request snapshots it, so the
// operator can reconfigure while a sync cycle or probe is in flight;
// requests already issued keep the endpoint they started with.
type CloudSDK struct {
	client *req.Client

	mu      sync.RWMutex
	baseURL string
	apiKey  string

	Sync   *SyncAPI
	Health *HealthAPI
}

// New creates an unconfigured CloudSDK. Call Configure before issuing
// requests.
func New() *CloudSDK {
	client := req.C().
		SetTimeout(30 * time.Second).
		SetUserAgent("MedMaintain/" + version.Version).
		SetCommonErrorResult(&APIError{}).
		SetJsonMarshal(jsonMarshal).
		SetJsonUnmarshal(jsonUnmarshal)

	s := &CloudSDK{client: client}
	s.Sync = &SyncAPI{sdk: s}
	s.Health = &HealthAPI{sdk: s}
	return s
}

// Configure points the SDK at a cloud endpoint. Safe to call again when
// the operator changes settings; empty URL or key leaves the SDK
// unconfigured and every call returns ErrNotConfigured.
func (s *CloudSDK) Configure(baseURL, apiKey string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.baseURL = strings.TrimRight(baseURL, "/")
	s.apiKey = apiKey
}

// endpoint returns a consistent snapshot of the configured target for one
// request.
func (s *CloudSDK) endpoint() (baseURL, apiKey string, ok bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.baseURL, s.apiKey, s.baseURL != "" && s.apiKey != ""
}

// Configured reports whether an endpoint and key are set.
func (s *CloudSDK) Configured() bool {
	_, _, ok := s.endpoint()
	return ok
}

// Close releases idle connections.
func (s *CloudSDK) Close() {
	s.client.GetTransport().CloseIdleConnections()
}
