// Package monitor provides http transport for the monitor API
package monitor

import (
	stdhttp "net/http"

	"groundwatch/internal/platform/config"
	perr "groundwatch/internal/platform/errors"
	phttp "groundwatch/internal/platform/net/http"
	"groundwatch/internal/platform/net/http/bind"
	"groundwatch/internal/platform/store"

	alertsdom "groundwatch/internal/services/alerts/domain"
	measdom "groundwatch/internal/services/measurements/domain"
)

// Options wire the monitor handlers
type Options struct {
	Config       config.Conf
	Store        *store.Store
	Measurements measdom.ReaderPort
	Alerts       alertsdom.QueryPort
}

// Register mounts monitor endpoints on the given router
func Register(r phttp.Router, opt Options) {
	h := &handlers{
		st:            opt.Store,
		meas:          opt.Measurements,
		alerts:        opt.Alerts,
		defaultRegion: opt.Config.Prefix("GW_PIPELINE_").MayString("REGION_ID", "chingola-zambia"),
	}

	r.Get("/healthz", phttp.Handle(h.health))
	r.Get("/measurements/latest", phttp.Handle(h.latestMeasurement))
	r.Get("/measurements", phttp.Handle(h.listMeasurements))
	r.Get("/alerts", phttp.Handle(h.listAlerts))
}

type handlers struct {
	st            *store.Store
	meas          measdom.ReaderPort
	alerts        alertsdom.QueryPort
	defaultRegion string
}

func (h *handlers) health(r *stdhttp.Request) phttp.Response {
	if err := h.st.Guard(r.Context()); err != nil {
		return phttp.Error(perr.Unavailablef("store unhealthy: %v", err))
	}
	return phttp.OK(map[string]string{"status": "ok"})
}

func (h *handlers) latestMeasurement(r *stdhttp.Request) phttp.Response {
	region := bind.QueryString(r, "region", h.defaultRegion)
	m, err := h.meas.Latest(r.Context(), region)
	if err != nil {
		return phttp.Error(err)
	}
	if m == nil {
		return phttp.Error(perr.NotFoundf("no measurements for region %q", region))
	}
	return phttp.OK(toMeasurementWire(*m))
}

// listQuery bounds the paging params shared by the list endpoints
type listQuery struct {
	Limit int `json:"limit" validate:"gte=0,lte=500"`
}

func (h *handlers) listMeasurements(r *stdhttp.Request) phttp.Response {
	region := bind.QueryString(r, "region", h.defaultRegion)
	limit, err := bind.QueryInt(r, "limit", 50)
	if err != nil {
		return phttp.Error(err)
	}
	if err := bind.Struct(listQuery{Limit: limit}); err != nil {
		return phttp.Error(err)
	}
	cur, err := decodeCursor(bind.QueryString(r, "cursor", ""))
	if err != nil {
		return phttp.Error(err)
	}
	after := measdom.AfterKey{CaptureDate: cur.Key, ID: cur.ID}

	rows, next, err := h.meas.List(r.Context(), region, after, limit)
	if err != nil {
		return phttp.Error(err)
	}

	out := make([]measurementWire, 0, len(rows))
	for _, m := range rows {
		out = append(out, toMeasurementWire(m))
	}
	// only a full page can have a next page
	nextCursor := ""
	if len(rows) == limit {
		nextCursor = encodeCursor(next.CaptureDate, next.ID)
	}
	return phttp.List(out, limit, nextCursor)
}

func (h *handlers) listAlerts(r *stdhttp.Request) phttp.Response {
	// empty region lists alerts across all regions
	region := bind.QueryString(r, "region", "")
	limit, err := bind.QueryInt(r, "limit", 50)
	if err != nil {
		return phttp.Error(err)
	}
	if err := bind.Struct(listQuery{Limit: limit}); err != nil {
		return phttp.Error(err)
	}
	cur, err := decodeCursor(bind.QueryString(r, "cursor", ""))
	if err != nil {
		return phttp.Error(err)
	}
	after := alertsdom.AfterKey{CreatedAt: cur.Key, ID: cur.ID}

	rows, next, err := h.alerts.List(r.Context(), region, after, limit)
	if err != nil {
		return phttp.Error(err)
	}

	out := make([]alertWire, 0, len(rows))
	for _, a := range rows {
		out = append(out, toAlertWire(a))
	}
	nextCursor := ""
	if len(rows) == limit {
		nextCursor = encodeCursor(next.CreatedAt, next.ID)
	}
	return phttp.List(out, limit, nextCursor)
}
