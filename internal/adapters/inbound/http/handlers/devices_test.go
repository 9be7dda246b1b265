package handlers_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	inboundhttp "github.com/architeacher/device-registry/internal/adapters/inbound/http"
	"github.com/architeacher/device-registry/internal/config"
	"github.com/architeacher/device-registry/internal/domain/model"
	"github.com/architeacher/device-registry/internal/infrastructure/telemetry"
	"github.com/architeacher/device-registry/internal/services"
	"github.com/architeacher/device-registry/internal/usecases"
	"github.com/architeacher/device-registry/pkg/logger"
	"github.com/architeacher/device-registry/pkg/metrics/noop"
	"github.com/stretchr/testify/require"
)

// memoryDeviceRepository backs handler tests with a map so requests
// flow through the full service and routing stack.
type memoryDeviceRepository struct {
	mu      sync.Mutex
	nextID  model.DeviceID
	devices map[model.DeviceID]model.Device
	pingErr error
}

func newMemoryDeviceRepository() *memoryDeviceRepository {
	return &memoryDeviceRepository{
		devices: make(map[model.DeviceID]model.Device),
	}
}

func (r *memoryDeviceRepository) Create(_ context.Context, device *model.Device) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	device.ID = r.nextID
	r.devices[device.ID] = *device

	return nil
}

func (r *memoryDeviceRepository) FindByID(_ context.Context, id model.DeviceID) (*model.Device, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	device, ok := r.devices[id]
	if !ok {
		return nil, model.DeviceNotFoundError{ID: id}
	}

	return &device, nil
}

func (r *memoryDeviceRepository) FindByBrand(_ context.Context, brand string) ([]*model.Device, error) {
	return r.findMatching(func(device *model.Device) bool {
		return device.MatchesBrand(brand)
	}), nil
}

func (r *memoryDeviceRepository) FindByState(_ context.Context, state model.State) ([]*model.Device, error) {
	return r.findMatching(func(device *model.Device) bool {
		return device.State == state
	}), nil
}

func (r *memoryDeviceRepository) FindAll(context.Context) ([]*model.Device, error) {
	return r.findMatching(func(*model.Device) bool {
		return true
	}), nil
}

func (r *memoryDeviceRepository) Update(_ context.Context, device *model.Device) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.devices[device.ID]; !ok {
		return model.DeviceNotFoundError{ID: device.ID}
	}

	r.devices[device.ID] = *device

	return nil
}

func (r *memoryDeviceRepository) Delete(_ context.Context, id model.DeviceID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.devices[id]; !ok {
		return model.DeviceNotFoundError{ID: id}
	}

	delete(r.devices, id)

	return nil
}

func (r *memoryDeviceRepository) Ping(context.Context) error {
	return r.pingErr
}

func (r *memoryDeviceRepository) findMatching(match func(*model.Device) bool) []*model.Device {
	r.mu.Lock()
	defer r.mu.Unlock()

	matched := make([]*model.Device, 0, len(r.devices))
	for id := range r.devices {
		device := r.devices[id]
		if match(&device) {
			matched = append(matched, &device)
		}
	}

	sort.Slice(matched, func(i, j int) bool {
		return matched[i].ID < matched[j].ID
	})

	return matched
}

type deviceBody struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Brand        string    `json:"brand"`
	State        string    `json:"state"`
	CreationTime time.Time `json:"creationTime"`
}

type errorBody struct {
	Timestamp time.Time `json:"timestamp"`
	Status    int       `json:"status"`
	Error     string    `json:"error"`
	Message   string    `json:"message"`
}

func newTestServer(t *testing.T) (http.Handler, *memoryDeviceRepository) {
	t.Helper()

	repo := newMemoryDeviceRepository()
	devicesSvc := services.NewDevicesService(repo)
	app := usecases.NewApplication(
		devicesSvc,
		repo,
		logger.NewTestLogger(),
		noop.NewMetricsClient(),
		telemetry.NewNoopTracerProvider(),
	)

	cfg := &config.ServiceConfig{}
	cfg.HTTPServer.WriteTimeout = 5 * time.Second

	return inboundhttp.NewRouter(inboundhttp.RouterConfig{
		App:    app,
		Logger: logger.NewTestLogger(),
		Config: cfg,
	}), repo
}

func doRequest(t *testing.T, handler http.Handler, method, target string, body string) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}

	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, req)

	return recorder
}

func decodeDevice(t *testing.T, recorder *httptest.ResponseRecorder) deviceBody {
	t.Helper()

	var body deviceBody
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))

	return body
}

func decodeError(t *testing.T, recorder *httptest.ResponseRecorder) errorBody {
	t.Helper()

	var body errorBody
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))

	return body
}

func createDevice(t *testing.T, handler http.Handler, name, brand, state string) deviceBody {
	t.Helper()

	payload := fmt.Sprintf(`{"name":%q,"brand":%q,"state":%q}`, name, brand, state)
	recorder := doRequest(t, handler, http.MethodPost, "/api/v1/devices/", payload)
	require.Equal(t, http.StatusCreated, recorder.Code)

	return decodeDevice(t, recorder)
}

func TestCreateDeviceEndpoint(t *testing.T) {
	t.Parallel()

	t.Run("creates and returns the device", func(t *testing.T) {
		t.Parallel()

		handler, _ := newTestServer(t)

		recorder := doRequest(t, handler, http.MethodPost, "/api/v1/devices/",
			`{"name":"iPhone 15","brand":"Apple","state":"AVAILABLE"}`)

		require.Equal(t, http.StatusCreated, recorder.Code)
		require.Equal(t, "application/json", recorder.Header().Get("Content-Type"))
		require.Equal(t, "/api/v1/devices/1", recorder.Header().Get("Location"))

		device := decodeDevice(t, recorder)
		require.Equal(t, int64(1), device.ID)
		require.Equal(t, "iPhone 15", device.Name)
		require.Equal(t, "Apple", device.Brand)
		require.Equal(t, "AVAILABLE", device.State)
		require.False(t, device.CreationTime.IsZero())
	})

	t.Run("malformed body", func(t *testing.T) {
		t.Parallel()

		handler, _ := newTestServer(t)

		recorder := doRequest(t, handler, http.MethodPost, "/api/v1/devices/", `{not json`)

		require.Equal(t, http.StatusBadRequest, recorder.Code)
		require.Equal(t, "Malformed request body", decodeError(t, recorder).Message)
	})

	t.Run("validation failures", func(t *testing.T) {
		t.Parallel()

		cases := []struct {
			name            string
			payload         string
			expectedMessage string
		}{
			{
				name:            "blank name",
				payload:         `{"name":"  ","brand":"Apple","state":"AVAILABLE"}`,
				expectedMessage: "Name cannot be blank",
			},
			{
				name:            "blank brand",
				payload:         `{"name":"iPhone 15","brand":"","state":"AVAILABLE"}`,
				expectedMessage: "Brand cannot be blank",
			},
			{
				name:            "missing state",
				payload:         `{"name":"iPhone 15","brand":"Apple"}`,
				expectedMessage: "State cannot be null",
			},
			{
				name:            "unknown state",
				payload:         `{"name":"iPhone 15","brand":"Apple","state":"BROKEN"}`,
				expectedMessage: "invalid device state",
			},
		}

		for _, tc := range cases {
			tc := tc
			t.Run(tc.name, func(t *testing.T) {
				t.Parallel()

				handler, _ := newTestServer(t)

				recorder := doRequest(t, handler, http.MethodPost, "/api/v1/devices/", tc.payload)

				require.Equal(t, http.StatusBadRequest, recorder.Code)

				body := decodeError(t, recorder)
				require.Equal(t, http.StatusBadRequest, body.Status)
				require.Equal(t, "Bad Request", body.Error)
				require.Contains(t, body.Message, tc.expectedMessage)
			})
		}
	})
}

func TestGetDeviceEndpoint(t *testing.T) {
	t.Parallel()

	t.Run("found", func(t *testing.T) {
		t.Parallel()

		handler, _ := newTestServer(t)
		created := createDevice(t, handler, "iPhone 15", "Apple", "AVAILABLE")

		recorder := doRequest(t, handler, http.MethodGet, fmt.Sprintf("/api/v1/devices/%d", created.ID), "")

		require.Equal(t, http.StatusOK, recorder.Code)
		require.Equal(t, created, decodeDevice(t, recorder))
	})

	t.Run("unknown id", func(t *testing.T) {
		t.Parallel()

		handler, _ := newTestServer(t)

		recorder := doRequest(t, handler, http.MethodGet, "/api/v1/devices/99", "")

		require.Equal(t, http.StatusNotFound, recorder.Code)

		body := decodeError(t, recorder)
		require.Equal(t, "Not Found", body.Error)
		require.Equal(t, "Device not found with id: 99", body.Message)
	})

	t.Run("non numeric id", func(t *testing.T) {
		t.Parallel()

		handler, _ := newTestServer(t)

		recorder := doRequest(t, handler, http.MethodGet, "/api/v1/devices/abc", "")

		require.Equal(t, http.StatusBadRequest, recorder.Code)
	})
}

func TestUpdateDeviceEndpoint(t *testing.T) {
	t.Parallel()

	t.Run("full replace", func(t *testing.T) {
		t.Parallel()

		handler, _ := newTestServer(t)
		created := createDevice(t, handler, "iPhone 14", "Apple", "AVAILABLE")

		recorder := doRequest(t, handler, http.MethodPut, fmt.Sprintf("/api/v1/devices/%d", created.ID),
			`{"name":"iPhone 15","brand":"Apple","state":"IN_USE"}`)

		require.Equal(t, http.StatusOK, recorder.Code)

		device := decodeDevice(t, recorder)
		require.Equal(t, "iPhone 15", device.Name)
		require.Equal(t, "IN_USE", device.State)
		require.Equal(t, created.CreationTime, device.CreationTime)
	})

	t.Run("renaming an in use device", func(t *testing.T) {
		t.Parallel()

		handler, _ := newTestServer(t)
		created := createDevice(t, handler, "iPhone 14", "Apple", "IN_USE")

		recorder := doRequest(t, handler, http.MethodPut, fmt.Sprintf("/api/v1/devices/%d", created.ID),
			`{"name":"iPhone 15","brand":"Apple","state":"IN_USE"}`)

		require.Equal(t, http.StatusBadRequest, recorder.Code)
		require.Equal(t, "Name and brand cannot be updated when device is IN_USE",
			decodeError(t, recorder).Message)
	})

	t.Run("unknown id", func(t *testing.T) {
		t.Parallel()

		handler, _ := newTestServer(t)

		recorder := doRequest(t, handler, http.MethodPut, "/api/v1/devices/99",
			`{"name":"iPhone 15","brand":"Apple","state":"AVAILABLE"}`)

		require.Equal(t, http.StatusNotFound, recorder.Code)
	})
}

func TestPatchDeviceEndpoint(t *testing.T) {
	t.Parallel()

	t.Run("state only", func(t *testing.T) {
		t.Parallel()

		handler, _ := newTestServer(t)
		created := createDevice(t, handler, "Pixel 8", "Google", "AVAILABLE")

		recorder := doRequest(t, handler, http.MethodPatch, fmt.Sprintf("/api/v1/devices/%d", created.ID),
			`{"state":"IN_USE"}`)

		require.Equal(t, http.StatusOK, recorder.Code)

		device := decodeDevice(t, recorder)
		require.Equal(t, "Pixel 8", device.Name)
		require.Equal(t, "IN_USE", device.State)
	})

	t.Run("empty patch is a no-op", func(t *testing.T) {
		t.Parallel()

		handler, _ := newTestServer(t)
		created := createDevice(t, handler, "Pixel 8", "Google", "AVAILABLE")

		recorder := doRequest(t, handler, http.MethodPatch, fmt.Sprintf("/api/v1/devices/%d", created.ID), `{}`)

		require.Equal(t, http.StatusOK, recorder.Code)
		require.Equal(t, created, decodeDevice(t, recorder))
	})

	t.Run("blank name is rejected", func(t *testing.T) {
		t.Parallel()

		handler, _ := newTestServer(t)
		created := createDevice(t, handler, "Pixel 8", "Google", "AVAILABLE")

		recorder := doRequest(t, handler, http.MethodPatch, fmt.Sprintf("/api/v1/devices/%d", created.ID),
			`{"name":"   "}`)

		require.Equal(t, http.StatusBadRequest, recorder.Code)
		require.Equal(t, "Name cannot be blank", decodeError(t, recorder).Message)
	})

	t.Run("renaming an in use device", func(t *testing.T) {
		t.Parallel()

		handler, _ := newTestServer(t)
		created := createDevice(t, handler, "Pixel 8", "Google", "IN_USE")

		recorder := doRequest(t, handler, http.MethodPatch, fmt.Sprintf("/api/v1/devices/%d", created.ID),
			`{"name":"Pixel 9"}`)

		require.Equal(t, http.StatusBadRequest, recorder.Code)
		require.Equal(t, "Name and brand cannot be updated when device is IN_USE",
			decodeError(t, recorder).Message)
	})
}

func TestDeleteDeviceEndpoint(t *testing.T) {
	t.Parallel()

	t.Run("deletes", func(t *testing.T) {
		t.Parallel()

		handler, _ := newTestServer(t)
		created := createDevice(t, handler, "iPhone 15", "Apple", "AVAILABLE")

		recorder := doRequest(t, handler, http.MethodDelete, fmt.Sprintf("/api/v1/devices/%d", created.ID), "")
		require.Equal(t, http.StatusNoContent, recorder.Code)

		recorder = doRequest(t, handler, http.MethodGet, fmt.Sprintf("/api/v1/devices/%d", created.ID), "")
		require.Equal(t, http.StatusNotFound, recorder.Code)
	})

	t.Run("in use device", func(t *testing.T) {
		t.Parallel()

		handler, _ := newTestServer(t)
		created := createDevice(t, handler, "iPhone 15", "Apple", "IN_USE")

		recorder := doRequest(t, handler, http.MethodDelete, fmt.Sprintf("/api/v1/devices/%d", created.ID), "")

		require.Equal(t, http.StatusBadRequest, recorder.Code)
		require.Equal(t, "Cannot delete device that is currently IN_USE",
			decodeError(t, recorder).Message)
	})

	t.Run("unknown id", func(t *testing.T) {
		t.Parallel()

		handler, _ := newTestServer(t)

		recorder := doRequest(t, handler, http.MethodDelete, "/api/v1/devices/99", "")

		require.Equal(t, http.StatusNotFound, recorder.Code)
	})
}

func TestListDevicesEndpoint(t *testing.T) {
	t.Parallel()

	seed := func(t *testing.T, handler http.Handler) {
		t.Helper()

		createDevice(t, handler, "iPhone 15", "Apple", "AVAILABLE")
		createDevice(t, handler, "iPhone 14", "Apple", "IN_USE")
		createDevice(t, handler, "Galaxy S24", "Samsung", "AVAILABLE")
	}

	listDevices := func(t *testing.T, handler http.Handler, target string) []deviceBody {
		t.Helper()

		recorder := doRequest(t, handler, http.MethodGet, target, "")
		require.Equal(t, http.StatusOK, recorder.Code)

		var devices []deviceBody
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &devices))

		return devices
	}

	t.Run("empty registry serializes as an empty array", func(t *testing.T) {
		t.Parallel()

		handler, _ := newTestServer(t)

		recorder := doRequest(t, handler, http.MethodGet, "/api/v1/devices/", "")

		require.Equal(t, http.StatusOK, recorder.Code)
		require.Equal(t, "[]\n", recorder.Body.String())
	})

	t.Run("no filter", func(t *testing.T) {
		t.Parallel()

		handler, _ := newTestServer(t)
		seed(t, handler)

		require.Len(t, listDevices(t, handler, "/api/v1/devices/"), 3)
	})

	t.Run("brand filter is case-insensitive", func(t *testing.T) {
		t.Parallel()

		handler, _ := newTestServer(t)
		seed(t, handler)

		devices := listDevices(t, handler, "/api/v1/devices/?brand=apple")

		require.Len(t, devices, 2)
		for _, device := range devices {
			require.Equal(t, "Apple", device.Brand)
		}
	})

	t.Run("state filter", func(t *testing.T) {
		t.Parallel()

		handler, _ := newTestServer(t)
		seed(t, handler)

		devices := listDevices(t, handler, "/api/v1/devices/?state=AVAILABLE")

		require.Len(t, devices, 2)
	})

	t.Run("combined filter", func(t *testing.T) {
		t.Parallel()

		handler, _ := newTestServer(t)
		seed(t, handler)

		devices := listDevices(t, handler, "/api/v1/devices/?brand=Apple&state=IN_USE")

		require.Len(t, devices, 1)
		require.Equal(t, "iPhone 14", devices[0].Name)
	})

	t.Run("blank brand", func(t *testing.T) {
		t.Parallel()

		handler, _ := newTestServer(t)

		recorder := doRequest(t, handler, http.MethodGet, "/api/v1/devices/?brand=", "")

		require.Equal(t, http.StatusBadRequest, recorder.Code)
		require.Equal(t, "Brand cannot be empty", decodeError(t, recorder).Message)
	})

	t.Run("invalid state", func(t *testing.T) {
		t.Parallel()

		handler, _ := newTestServer(t)

		recorder := doRequest(t, handler, http.MethodGet, "/api/v1/devices/?state=BROKEN", "")

		require.Equal(t, http.StatusBadRequest, recorder.Code)
	})
}

// TestDeviceLifecycle walks a device through the in-use lock end to
// end: once marked IN_USE, renames and deletes are rejected until the
// device is released.
func TestDeviceLifecycle(t *testing.T) {
	t.Parallel()

	handler, _ := newTestServer(t)

	created := createDevice(t, handler, "ThinkPad X1", "Lenovo", "AVAILABLE")
	target := fmt.Sprintf("/api/v1/devices/%d", created.ID)

	recorder := doRequest(t, handler, http.MethodPatch, target, `{"state":"IN_USE"}`)
	require.Equal(t, http.StatusOK, recorder.Code)

	recorder = doRequest(t, handler, http.MethodPatch, target, `{"name":"ThinkPad X2"}`)
	require.Equal(t, http.StatusBadRequest, recorder.Code)
	require.Equal(t, "Name and brand cannot be updated when device is IN_USE",
		decodeError(t, recorder).Message)

	recorder = doRequest(t, handler, http.MethodDelete, target, "")
	require.Equal(t, http.StatusBadRequest, recorder.Code)
	require.Equal(t, "Cannot delete device that is currently IN_USE",
		decodeError(t, recorder).Message)

	recorder = doRequest(t, handler, http.MethodPatch, target, `{"state":"AVAILABLE"}`)
	require.Equal(t, http.StatusOK, recorder.Code)

	recorder = doRequest(t, handler, http.MethodDelete, target, "")
	require.Equal(t, http.StatusNoContent, recorder.Code)

	recorder = doRequest(t, handler, http.MethodGet, target, "")
	require.Equal(t, http.StatusNotFound, recorder.Code)
}

func TestHealthEndpoints(t *testing.T) {
	t.Parallel()

	t.Run("liveness", func(t *testing.T) {
		t.Parallel()

		handler, _ := newTestServer(t)

		recorder := doRequest(t, handler, http.MethodGet, "/livez", "")

		require.Equal(t, http.StatusOK, recorder.Code)
		require.Contains(t, recorder.Body.String(), `"status":"ok"`)
	})

	t.Run("readiness", func(t *testing.T) {
		t.Parallel()

		handler, _ := newTestServer(t)

		recorder := doRequest(t, handler, http.MethodGet, "/readyz", "")

		require.Equal(t, http.StatusOK, recorder.Code)
		require.Contains(t, recorder.Body.String(), `"ready":true`)
	})

	t.Run("readiness with unreachable database", func(t *testing.T) {
		t.Parallel()

		handler, repo := newTestServer(t)
		repo.pingErr = errors.New("connection refused")

		recorder := doRequest(t, handler, http.MethodGet, "/readyz", "")

		require.Equal(t, http.StatusServiceUnavailable, recorder.Code)
		require.Contains(t, recorder.Body.String(), `"ready":false`)
	})
}
