// Package analytics computes the read-side aggregates for the fleet:
// dashboard counts, consumption and cost trends, utilization and efficiency
// rankings. Every function is a pure read over current stored data,
// recomputed per call.
package analytics

import (
	"fmt"
	"math"
	"sort"
	"time"

	"gorm.io/gorm"

	"fleet_manager/internal/models"
)

type VehicleCounts struct {
	Total       int64 `json:"total"`
	Active      int64 `json:"active"`
	Maintenance int64 `json:"maintenance"`
	Inactive    int64 `json:"inactive"`
}

type DriverCounts struct {
	Total    int64 `json:"total"`
	Active   int64 `json:"active"`
	Inactive int64 `json:"inactive"`
}

type TripCounts struct {
	Total        int64 `json:"total"`
	Completed    int64 `json:"completed"`
	InProgress   int64 `json:"in_progress"`
	Planned      int64 `json:"planned"`
	Recent30Days int64 `json:"recent_30_days"`
}

type Totals struct {
	Distance              float64 `json:"distance"`
	FuelUsed              float64 `json:"fuel_used"`
	RecentMaintenanceCost float64 `json:"recent_maintenance_cost"`
}

type DashboardStats struct {
	Vehicles VehicleCounts `json:"vehicles"`
	Drivers  DriverCounts  `json:"drivers"`
	Trips    TripCounts    `json:"trips"`
	Totals   Totals        `json:"totals"`
}

// Series is a chart-ready label/value pairing, chronological for trends.
type Series struct {
	Labels []string  `json:"labels"`
	Values []float64 `json:"values"`
}

type CountSeries struct {
	Labels []string `json:"labels"`
	Values []int64  `json:"values"`
}

type VehicleUtilization struct {
	Vehicle         string  `json:"vehicle"`
	UtilizationRate float64 `json:"utilization_rate"`
	DaysUsed        int     `json:"days_used"`
	TotalDays       int     `json:"total_days"`
}

type VehicleEfficiency struct {
	Vehicle       string  `json:"vehicle"`
	FuelType      string  `json:"fuel_type"`
	Efficiency    float64 `json:"efficiency"`
	TotalDistance float64 `json:"total_distance"`
	TotalFuel     float64 `json:"total_fuel"`
}

// recentWindowDays is the "recent" window used by the dashboard snapshot.
const recentWindowDays = 30

func round2(v float64) float64 { return math.Round(v*100) / 100 }
func round1(v float64) float64 { return math.Round(v*10) / 10 }

func vehicleLabel(v models.Vehicle) string {
	return fmt.Sprintf("%s (%s)", v.RegNo, v.ModelName)
}

// statusCounts runs one GROUP BY scan instead of a count query per status.
func statusCounts(db *gorm.DB, model interface{}) (map[string]int64, int64, error) {
	var rows []struct {
		Status string
		N      int64
	}
	if err := db.Model(model).Select("status, COUNT(*) AS n").Group("status").Scan(&rows).Error; err != nil {
		return nil, 0, err
	}
	counts := make(map[string]int64, len(rows))
	var total int64
	for _, r := range rows {
		counts[r.Status] = r.N
		total += r.N
	}
	return counts, total, nil
}

// Dashboard assembles the overall fleet snapshot.
func Dashboard(db *gorm.DB, now time.Time) (*DashboardStats, error) {
	stats := &DashboardStats{}

	vc, vTotal, err := statusCounts(db, &models.Vehicle{})
	if err != nil {
		return nil, err
	}
	stats.Vehicles = VehicleCounts{Total: vTotal, Active: vc["active"], Maintenance: vc["maintenance"], Inactive: vc["inactive"]}

	dc, dTotal, err := statusCounts(db, &models.Driver{})
	if err != nil {
		return nil, err
	}
	stats.Drivers = DriverCounts{Total: dTotal, Active: dc["active"], Inactive: dc["inactive"]}

	tc, tTotal, err := statusCounts(db, &models.Trip{})
	if err != nil {
		return nil, err
	}
	windowStart := models.DateOnly(now).AddDate(0, 0, -recentWindowDays)
	var recent int64
	if err := db.Model(&models.Trip{}).Where("trip_date >= ?", windowStart).Count(&recent).Error; err != nil {
		return nil, err
	}
	stats.Trips = TripCounts{
		Total:        tTotal,
		Completed:    tc[models.TripCompleted],
		InProgress:   tc[models.TripInProgress],
		Planned:      tc[models.TripPlanned],
		Recent30Days: recent,
	}

	var sums struct {
		Distance float64
		FuelUsed float64
	}
	if err := db.Model(&models.Trip{}).
		Select("COALESCE(SUM(distance), 0) AS distance, COALESCE(SUM(fuel_used), 0) AS fuel_used").
		Scan(&sums).Error; err != nil {
		return nil, err
	}

	var maintCost float64
	if err := db.Model(&models.Maintenance{}).
		Select("COALESCE(SUM(cost), 0)").
		Where("date >= ?", windowStart).
		Scan(&maintCost).Error; err != nil {
		return nil, err
	}

	stats.Totals = Totals{
		Distance:              round2(sums.Distance),
		FuelUsed:              round2(sums.FuelUsed),
		RecentMaintenanceCost: round2(maintCost),
	}
	return stats, nil
}

// FuelConsumptionTrend sums fuel used per calendar day over a window of the
// given number of days ending today, zero-filling days with no trips.
func FuelConsumptionTrend(db *gorm.DB, days int, now time.Time) (*Series, error) {
	if days < 1 {
		days = 1
	}
	today := models.DateOnly(now)
	start := today.AddDate(0, 0, -(days - 1))

	var trips []models.Trip
	if err := db.Where("trip_date >= ? AND fuel_used IS NOT NULL AND fuel_used > 0", start).
		Find(&trips).Error; err != nil {
		return nil, err
	}

	daily := make(map[string]float64, days)
	for _, t := range trips {
		daily[t.TripDate.Format(time.DateOnly)] += *t.FuelUsed
	}

	series := &Series{}
	for d := start; !d.After(today); d = d.AddDate(0, 0, 1) {
		label := d.Format(time.DateOnly)
		series.Labels = append(series.Labels, label)
		series.Values = append(series.Values, round2(daily[label]))
	}
	return series, nil
}

// tripCountsBy returns trip counts grouped by the given foreign-key column.
func tripCountsBy(db *gorm.DB, column string) (map[uint]int64, error) {
	var rows []struct {
		ID uint
		N  int64
	}
	if err := db.Model(&models.Trip{}).
		Select(column + " AS id, COUNT(*) AS n").
		Group(column).
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	counts := make(map[uint]int64, len(rows))
	for _, r := range rows {
		counts[r.ID] = r.N
	}
	return counts, nil
}

// TripsPerVehicle counts trips per vehicle, including vehicles with none.
func TripsPerVehicle(db *gorm.DB) (*CountSeries, error) {
	counts, err := tripCountsBy(db, "vehicle_id")
	if err != nil {
		return nil, err
	}
	var vehicles []models.Vehicle
	if err := db.Order("id").Find(&vehicles).Error; err != nil {
		return nil, err
	}
	series := &CountSeries{}
	for _, v := range vehicles {
		series.Labels = append(series.Labels, vehicleLabel(v))
		series.Values = append(series.Values, counts[v.ID])
	}
	return series, nil
}

// TripsPerDriver counts trips per driver, including drivers with none.
func TripsPerDriver(db *gorm.DB) (*CountSeries, error) {
	counts, err := tripCountsBy(db, "driver_id")
	if err != nil {
		return nil, err
	}
	var drivers []models.Driver
	if err := db.Order("id").Find(&drivers).Error; err != nil {
		return nil, err
	}
	series := &CountSeries{}
	for _, d := range drivers {
		series.Labels = append(series.Labels, d.Name)
		series.Values = append(series.Values, counts[d.ID])
	}
	return series, nil
}

// MaintenanceCostTrend sums cost per calendar month over a window of the
// given number of months ending in the current month, zero-filling empty
// months. Month arithmetic rolls over year boundaries.
func MaintenanceCostTrend(db *gorm.DB, months int, now time.Time) (*Series, error) {
	if months < 1 {
		months = 1
	}
	today := models.DateOnly(now)
	firstOfMonth := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, time.UTC)
	start := firstOfMonth.AddDate(0, -(months - 1), 0)

	var records []models.Maintenance
	if err := db.Where("date >= ?", start).Find(&records).Error; err != nil {
		return nil, err
	}

	monthly := make(map[string]float64, months)
	for _, r := range records {
		monthly[r.Date.Format("2006-01")] += r.Cost
	}

	series := &Series{}
	for m := start; !m.After(firstOfMonth); m = m.AddDate(0, 1, 0) {
		label := m.Format("2006-01")
		series.Labels = append(series.Labels, label)
		series.Values = append(series.Values, round2(monthly[label]))
	}
	return series, nil
}

// VehicleUtilizationRates ranks vehicles by the share of calendar days in the
// window on which they ran at least one trip.
func VehicleUtilizationRates(db *gorm.DB, days int, now time.Time) ([]VehicleUtilization, error) {
	if days < 1 {
		days = 1
	}
	today := models.DateOnly(now)
	start := today.AddDate(0, 0, -(days - 1))

	var rows []struct {
		VehicleID uint
		TripDate  time.Time
	}
	if err := db.Model(&models.Trip{}).
		Select("vehicle_id, trip_date").
		Where("trip_date >= ?", start).
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	// Distinct trip days per vehicle; dates are already midnight UTC.
	daysUsed := make(map[uint]map[string]struct{})
	for _, r := range rows {
		key := r.TripDate.Format(time.DateOnly)
		if daysUsed[r.VehicleID] == nil {
			daysUsed[r.VehicleID] = make(map[string]struct{})
		}
		daysUsed[r.VehicleID][key] = struct{}{}
	}

	var vehicles []models.Vehicle
	if err := db.Order("id").Find(&vehicles).Error; err != nil {
		return nil, err
	}

	result := make([]VehicleUtilization, 0, len(vehicles))
	for _, v := range vehicles {
		used := len(daysUsed[v.ID])
		result = append(result, VehicleUtilization{
			Vehicle:         vehicleLabel(v),
			UtilizationRate: round1(float64(used) / float64(days) * 100),
			DaysUsed:        used,
			TotalDays:       days,
		})
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].UtilizationRate > result[j].UtilizationRate
	})
	return result, nil
}

// FuelEfficiencyRanking ranks vehicles by aggregate km per liter over trips
// with positive distance and fuel. Vehicles whose aggregate fuel is zero are
// skipped.
func FuelEfficiencyRanking(db *gorm.DB) ([]VehicleEfficiency, error) {
	var rows []struct {
		VehicleID     uint
		TotalDistance float64
		TotalFuel     float64
	}
	if err := db.Model(&models.Trip{}).
		Select("vehicle_id, COALESCE(SUM(distance), 0) AS total_distance, COALESCE(SUM(fuel_used), 0) AS total_fuel").
		Where("distance IS NOT NULL AND fuel_used IS NOT NULL AND distance > 0 AND fuel_used > 0").
		Group("vehicle_id").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	var vehicles []models.Vehicle
	if err := db.Find(&vehicles).Error; err != nil {
		return nil, err
	}
	byID := make(map[uint]models.Vehicle, len(vehicles))
	for _, v := range vehicles {
		byID[v.ID] = v
	}

	result := make([]VehicleEfficiency, 0, len(rows))
	for _, r := range rows {
		if r.TotalFuel <= 0 {
			continue
		}
		v, ok := byID[r.VehicleID]
		if !ok {
			continue
		}
		result = append(result, VehicleEfficiency{
			Vehicle:       vehicleLabel(v),
			FuelType:      v.FuelType,
			Efficiency:    round2(r.TotalDistance / r.TotalFuel),
			TotalDistance: round2(r.TotalDistance),
			TotalFuel:     round2(r.TotalFuel),
		})
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Efficiency > result[j].Efficiency
	})
	return result, nil
}
