package services

import (
	"context"
	"encoding/json"
	"log"

	"github.com/matchellatte/church-konek-web-admin/models"
	"github.com/matchellatte/church-konek-web-admin/store"
)

const statsProjection = "appointment_id, status, services (service_name)"

// StatsService computes the dashboard aggregates. Everything is recomputed
// from scratch on each load; a status change elsewhere is not reflected
// until the next full load.
type StatsService struct {
	store store.Store
}

func NewStatsService(s store.Store) *StatsService {
	return &StatsService{store: s}
}

// LoadDashboard issues one read of the appointments collection and derives
// the status counts and the per-service distribution from it.
func (s *StatsService) LoadDashboard(ctx context.Context) (models.Stats, []models.ServiceStat, error) {
	data, err := s.store.FetchAll(ctx, "appointments", statsProjection)
	if err != nil {
		log.Printf("[StatsService] Error fetching appointments: %v", err)
		return models.Stats{}, nil, err
	}

	var rows []models.AppointmentRow
	if err := json.Unmarshal(data, &rows); err != nil {
		log.Printf("[StatsService] Error decoding appointments: %v", err)
		return models.Stats{}, nil, err
	}

	appointments := make([]models.Appointment, 0, len(rows))
	for _, row := range rows {
		appointments = append(appointments, normalizeAppointment(row))
	}

	return ComputeStats(appointments), ServiceDistribution(appointments), nil
}

// ComputeStats counts appointments per status in a single pass. The Pending
// card counts the "pending for requirements" status, matching the dashboard
// cards; any other status (including the bare "pending") contributes to the
// total only.
func ComputeStats(appointments []models.Appointment) models.Stats {
	stats := models.Stats{Total: len(appointments)}
	for _, a := range appointments {
		switch a.Status {
		case models.StatusPendingRequirements:
			stats.Pending++
		case models.StatusApproved:
			stats.Approved++
		case models.StatusCancelled:
			stats.Cancelled++
		case models.StatusCompleted:
			stats.Completed++
		}
	}
	return stats
}

// ServiceDistribution counts appointments per service display name, emitted
// in first-seen order. Null service joins land in the "Unknown Service"
// bucket, under the same literal the appointments view renders.
func ServiceDistribution(appointments []models.Appointment) []models.ServiceStat {
	counts := make(map[string]int)
	var order []string
	for _, a := range appointments {
		if _, seen := counts[a.ServiceName]; !seen {
			order = append(order, a.ServiceName)
		}
		counts[a.ServiceName]++
	}

	out := make([]models.ServiceStat, 0, len(order))
	for _, name := range order {
		out = append(out, models.ServiceStat{ServiceName: name, Count: counts[name]})
	}
	return out
}

// ServiceSeries shapes the per-service distribution for the bar chart.
func ServiceSeries(stats []models.ServiceStat) models.ChartSeries {
	series := models.ChartSeries{
		Labels: make([]string, 0, len(stats)),
		Counts: make([]int, 0, len(stats)),
	}
	for _, s := range stats {
		series.Labels = append(series.Labels, s.ServiceName)
		series.Counts = append(series.Counts, s.Count)
	}
	return series
}

// StatusSeries shapes the status counts for the doughnut chart.
func StatusSeries(stats models.Stats) models.ChartSeries {
	return models.ChartSeries{
		Labels: []string{"Pending", "Approved", "Cancelled", "Completed"},
		Counts: []int{stats.Pending, stats.Approved, stats.Cancelled, stats.Completed},
	}
}
