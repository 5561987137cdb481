package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"coffee_roaster"
	"coffee_roaster/internal/service"
)

func TestDataHandlers(t *testing.T) {
	ft := 210.4
	status := &mockStatus{
		status: coffee_roaster.RoastStatus{
			IsRoasting:  true,
			Temperature: 312.3,
			ElapsedTime: 95.2,
			RoastStage:  "Light Brown",
		},
		temp:  312.3,
		stage: "Light Brown",
		data: []coffee_roaster.TemperaturePoint{
			{Time: 1, Temperature: 100},
			{Time: 2, Temperature: 150},
		},
		crack: coffee_roaster.CrackStatus{First: true, FirstTime: &ft},
	}
	r := newTestRouter(&service.Service{Status: status})

	t.Run("status", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/v1/roast/status", nil)
		r.ServeHTTP(w, req)
		if w.Code != http.StatusOK {
			t.Fatalf("status=%d", w.Code)
		}
		var got coffee_roaster.RoastStatus
		if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		if !got.IsRoasting || got.Temperature != 312.3 || got.RoastStage != "Light Brown" {
			t.Fatalf("unexpected status: %+v", got)
		}
	})

	t.Run("temperature", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/v1/roast/temperature", nil)
		r.ServeHTTP(w, req)
		if w.Code != http.StatusOK {
			t.Fatalf("status=%d", w.Code)
		}
		var got struct {
			Temperature float64 `json:"temperature"`
			Time        float64 `json:"time"`
		}
		if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		if got.Temperature != 312.3 || got.Time <= 0 {
			t.Fatalf("unexpected body: %+v", got)
		}
	})

	t.Run("data", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/v1/roast/data", nil)
		r.ServeHTTP(w, req)
		var got []coffee_roaster.TemperaturePoint
		if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil || len(got) != 2 {
			t.Fatalf("data body=%s err=%v", w.Body.String(), err)
		}
	})

	t.Run("stage", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/v1/roast/stage", nil)
		r.ServeHTTP(w, req)
		if w.Body.String() != `"Light Brown"` {
			t.Fatalf("stage body=%s", w.Body.String())
		}
	})

	t.Run("crack status", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/v1/roast/crack-status", nil)
		r.ServeHTTP(w, req)
		var got coffee_roaster.CrackStatus
		if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		if !got.First || got.FirstTime == nil || *got.FirstTime != 210.4 || got.Second {
			t.Fatalf("unexpected crack status: %+v", got)
		}
	})
}
