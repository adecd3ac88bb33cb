package collaborators

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/shopspring/decimal"

	portssvc "github.com/paycove/payroll_engine/internal/core/ports/services"
)

const sourceTimeout = 10 * time.Second

// HTTPAttendanceSource pulls reported hours from the time-tracking service's
// REST endpoint.
type HTTPAttendanceSource struct {
	baseURL string
	client  *http.Client
}

// NewHTTPAttendanceSource creates an attendance source for the given base URL.
func NewHTTPAttendanceSource(baseURL string) portssvc.AttendanceSource {
	return &HTTPAttendanceSource{
		baseURL: baseURL,
		client:  &http.Client{Timeout: sourceTimeout},
	}
}

var _ portssvc.AttendanceSource = (*HTTPAttendanceSource)(nil)

// GetReportedHours implements portssvc.AttendanceSource.
func (s *HTTPAttendanceSource) GetReportedHours(ctx context.Context, employeeID, runID string) (portssvc.ReportedHours, error) {
	var payload struct {
		HoursWorked   decimal.Decimal `json:"hoursWorked"`
		OvertimeHours decimal.Decimal `json:"overtimeHours"`
	}
	endpoint := fmt.Sprintf("%s/hours/%s?runID=%s", s.baseURL, url.PathEscape(employeeID), url.QueryEscape(runID))
	if err := getJSON(ctx, s.client, endpoint, &payload); err != nil {
		return portssvc.ReportedHours{}, fmt.Errorf("attendance source: %w", err)
	}
	return portssvc.ReportedHours{
		HoursWorked:   payload.HoursWorked,
		OvertimeHours: payload.OvertimeHours,
	}, nil
}

// HTTPSalesSource pulls period sales totals from the sales service's REST
// endpoint for commission-based employees.
type HTTPSalesSource struct {
	baseURL string
	client  *http.Client
}

// NewHTTPSalesSource creates a sales source for the given base URL.
func NewHTTPSalesSource(baseURL string) portssvc.SalesSource {
	return &HTTPSalesSource{
		baseURL: baseURL,
		client:  &http.Client{Timeout: sourceTimeout},
	}
}

var _ portssvc.SalesSource = (*HTTPSalesSource)(nil)

// GetReportedSales implements portssvc.SalesSource.
func (s *HTTPSalesSource) GetReportedSales(ctx context.Context, employeeID, runID string) (decimal.Decimal, error) {
	var payload struct {
		SalesTotal decimal.Decimal `json:"salesTotal"`
	}
	endpoint := fmt.Sprintf("%s/sales/%s?runID=%s", s.baseURL, url.PathEscape(employeeID), url.QueryEscape(runID))
	if err := getJSON(ctx, s.client, endpoint, &payload); err != nil {
		return decimal.Zero, fmt.Errorf("sales source: %w", err)
	}
	return payload.SalesTotal, nil
}

func getJSON(ctx context.Context, client *http.Client, endpoint string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d from %s", resp.StatusCode, endpoint)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
