package analytics

import (
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"fleet_manager/internal/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("db handle: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	if err := db.AutoMigrate(&models.User{}, &models.Vehicle{}, &models.Driver{}, &models.Trip{}, &models.Maintenance{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func seedVehicle(t *testing.T, db *gorm.DB, reg, model, fuelType, status string) *models.Vehicle {
	t.Helper()
	v := &models.Vehicle{RegNo: reg, ModelName: model, FuelType: fuelType, Status: status}
	if err := db.Create(v).Error; err != nil {
		t.Fatalf("seed vehicle: %v", err)
	}
	return v
}

func seedDriver(t *testing.T, db *gorm.DB, name, license, status string) *models.Driver {
	t.Helper()
	d := &models.Driver{Name: name, LicenseNo: license, Status: status}
	if err := db.Create(d).Error; err != nil {
		t.Fatalf("seed driver: %v", err)
	}
	return d
}

func seedTrip(t *testing.T, db *gorm.DB, vehicleID, driverID uint, date time.Time, distance, fuel *float64, status string) *models.Trip {
	t.Helper()
	trip := &models.Trip{
		VehicleID:   vehicleID,
		DriverID:    driverID,
		Source:      "A",
		Destination: "B",
		Distance:    distance,
		FuelUsed:    fuel,
		TripDate:    models.DateOnly(date),
		Status:      status,
	}
	if err := db.Create(trip).Error; err != nil {
		t.Fatalf("seed trip: %v", err)
	}
	return trip
}

func f(v float64) *float64 { return &v }

func TestFuelConsumptionTrendZeroFills(t *testing.T) {
	db := setupTestDB(t)
	v := seedVehicle(t, db, "AB-01", "X", "petrol", "active")
	d := seedDriver(t, db, "Alice", "L-1", "active")

	now := time.Date(2025, 8, 30, 12, 0, 0, 0, time.UTC)
	seedTrip(t, db, v.ID, d.ID, now.AddDate(0, 0, -2), f(40), f(5), models.TripCompleted)
	seedTrip(t, db, v.ID, d.ID, now, f(18), f(2), models.TripCompleted)
	// Zero-fuel trips do not contribute.
	seedTrip(t, db, v.ID, d.ID, now, f(10), f(0), models.TripCompleted)
	// Trips outside the window do not contribute.
	seedTrip(t, db, v.ID, d.ID, now.AddDate(0, 0, -3), f(99), f(9), models.TripCompleted)

	series, err := FuelConsumptionTrend(db, 3, now)
	if err != nil {
		t.Fatalf("FuelConsumptionTrend: %v", err)
	}
	wantLabels := []string{"2025-08-28", "2025-08-29", "2025-08-30"}
	wantValues := []float64{5, 0, 2}
	if len(series.Labels) != 3 {
		t.Fatalf("expected 3 days, got %v", series.Labels)
	}
	for i := range wantLabels {
		if series.Labels[i] != wantLabels[i] {
			t.Fatalf("label %d: want %s got %s", i, wantLabels[i], series.Labels[i])
		}
		if series.Values[i] != wantValues[i] {
			t.Fatalf("value %d: want %v got %v", i, wantValues[i], series.Values[i])
		}
	}
}

func TestTripsPerVehicleIncludesZeroTripVehicles(t *testing.T) {
	db := setupTestDB(t)
	busy := seedVehicle(t, db, "AB-01", "X", "petrol", "active")
	idle := seedVehicle(t, db, "AB-02", "Y", "diesel", "active")
	d := seedDriver(t, db, "Alice", "L-1", "active")

	now := time.Now()
	seedTrip(t, db, busy.ID, d.ID, now, nil, nil, models.TripPlanned)
	seedTrip(t, db, busy.ID, d.ID, now, nil, nil, models.TripPlanned)

	series, err := TripsPerVehicle(db)
	if err != nil {
		t.Fatalf("TripsPerVehicle: %v", err)
	}
	if len(series.Labels) != 2 {
		t.Fatalf("expected both vehicles, got %v", series.Labels)
	}
	if series.Labels[0] != "AB-01 (X)" || series.Values[0] != 2 {
		t.Fatalf("unexpected first entry: %s=%d", series.Labels[0], series.Values[0])
	}
	if series.Labels[1] != "AB-02 (Y)" || series.Values[1] != 0 {
		t.Fatalf("expected zero count for idle vehicle, got %s=%d", series.Labels[1], series.Values[1])
	}
	_ = idle
}

func TestTripsPerDriverIncludesZeroTripDrivers(t *testing.T) {
	db := setupTestDB(t)
	v := seedVehicle(t, db, "AB-01", "X", "petrol", "active")
	alice := seedDriver(t, db, "Alice", "L-1", "active")
	seedDriver(t, db, "Bob", "L-2", "active")

	seedTrip(t, db, v.ID, alice.ID, time.Now(), nil, nil, models.TripPlanned)

	series, err := TripsPerDriver(db)
	if err != nil {
		t.Fatalf("TripsPerDriver: %v", err)
	}
	if len(series.Labels) != 2 || series.Values[0] != 1 || series.Values[1] != 0 {
		t.Fatalf("unexpected series: %v %v", series.Labels, series.Values)
	}
}

func TestMaintenanceCostTrendRollsOverYears(t *testing.T) {
	db := setupTestDB(t)
	v := seedVehicle(t, db, "AB-01", "X", "petrol", "active")

	mk := func(date time.Time, cost float64) {
		rec := &models.Maintenance{
			VehicleID:       v.ID,
			Date:            models.DateOnly(date),
			Cost:            cost,
			Description:     "service",
			MaintenanceType: "routine",
			Status:          "completed",
		}
		if err := db.Create(rec).Error; err != nil {
			t.Fatalf("seed maintenance: %v", err)
		}
	}

	now := time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)
	mk(time.Date(2024, 11, 5, 0, 0, 0, 0, time.UTC), 100)
	mk(time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC), 30)
	mk(time.Date(2025, 1, 9, 0, 0, 0, 0, time.UTC), 20.56)
	// Before the window.
	mk(time.Date(2024, 10, 31, 0, 0, 0, 0, time.UTC), 999)

	series, err := MaintenanceCostTrend(db, 3, now)
	if err != nil {
		t.Fatalf("MaintenanceCostTrend: %v", err)
	}
	wantLabels := []string{"2024-11", "2024-12", "2025-01"}
	wantValues := []float64{100, 0, 50.56}
	for i := range wantLabels {
		if series.Labels[i] != wantLabels[i] || series.Values[i] != wantValues[i] {
			t.Fatalf("entry %d: got %s=%v want %s=%v", i, series.Labels[i], series.Values[i], wantLabels[i], wantValues[i])
		}
	}
}

func TestVehicleUtilizationRates(t *testing.T) {
	db := setupTestDB(t)
	busy := seedVehicle(t, db, "AB-01", "X", "petrol", "active")
	idle := seedVehicle(t, db, "AB-02", "Y", "diesel", "active")
	d := seedDriver(t, db, "Alice", "L-1", "active")

	now := time.Date(2025, 8, 30, 0, 0, 0, 0, time.UTC)
	// Two trips on the same day count as one utilized day.
	seedTrip(t, db, busy.ID, d.ID, now, nil, nil, models.TripCompleted)
	seedTrip(t, db, busy.ID, d.ID, now, nil, nil, models.TripCompleted)
	seedTrip(t, db, busy.ID, d.ID, now.AddDate(0, 0, -1), nil, nil, models.TripCompleted)

	result, err := VehicleUtilizationRates(db, 4, now)
	if err != nil {
		t.Fatalf("VehicleUtilizationRates: %v", err)
	}
	if len(result) != 2 {
		t.Fatalf("expected 2 vehicles, got %d", len(result))
	}
	if result[0].Vehicle != "AB-01 (X)" || result[0].DaysUsed != 2 || result[0].UtilizationRate != 50.0 {
		t.Fatalf("unexpected top entry: %+v", result[0])
	}
	if result[1].Vehicle != "AB-02 (Y)" || result[1].UtilizationRate != 0.0 {
		t.Fatalf("unexpected idle entry: %+v", result[1])
	}
	_ = idle
}

func TestFuelEfficiencyRankingSkipsZeroFuel(t *testing.T) {
	db := setupTestDB(t)
	efficient := seedVehicle(t, db, "AB-01", "X", "petrol", "active")
	thirsty := seedVehicle(t, db, "AB-02", "Y", "diesel", "active")
	electric := seedVehicle(t, db, "AB-03", "Z", "electric", "active")
	d := seedDriver(t, db, "Alice", "L-1", "active")

	now := time.Now()
	seedTrip(t, db, efficient.ID, d.ID, now, f(150), f(10), models.TripCompleted)
	seedTrip(t, db, efficient.ID, d.ID, now, f(50), f(10), models.TripCompleted)
	seedTrip(t, db, thirsty.ID, d.ID, now, f(100), f(20), models.TripCompleted)
	// Positive distance but zero fuel never qualifies.
	seedTrip(t, db, electric.ID, d.ID, now, f(300), f(0), models.TripCompleted)

	result, err := FuelEfficiencyRanking(db)
	if err != nil {
		t.Fatalf("FuelEfficiencyRanking: %v", err)
	}
	if len(result) != 2 {
		t.Fatalf("expected electric vehicle skipped, got %d entries", len(result))
	}
	if result[0].Vehicle != "AB-01 (X)" || result[0].Efficiency != 10.0 {
		t.Fatalf("unexpected leader: %+v", result[0])
	}
	if result[1].Vehicle != "AB-02 (Y)" || result[1].Efficiency != 5.0 {
		t.Fatalf("unexpected runner-up: %+v", result[1])
	}
	if result[0].TotalDistance != 200 || result[0].TotalFuel != 20 {
		t.Fatalf("unexpected totals: %+v", result[0])
	}
}

func TestDashboard(t *testing.T) {
	db := setupTestDB(t)
	active := seedVehicle(t, db, "AB-01", "X", "petrol", "active")
	seedVehicle(t, db, "AB-02", "Y", "diesel", "maintenance")
	seedVehicle(t, db, "AB-03", "Z", "electric", "inactive")
	alice := seedDriver(t, db, "Alice", "L-1", "active")
	seedDriver(t, db, "Bob", "L-2", "inactive")

	now := time.Date(2025, 8, 30, 0, 0, 0, 0, time.UTC)
	seedTrip(t, db, active.ID, alice.ID, now, f(100.008), f(10), models.TripCompleted)
	seedTrip(t, db, active.ID, alice.ID, now.AddDate(0, 0, -10), f(50), f(5), models.TripInProgress)
	// Old trip still counts toward totals, not toward the recent window.
	seedTrip(t, db, active.ID, alice.ID, now.AddDate(0, 0, -60), f(25), nil, models.TripPlanned)

	rec := &models.Maintenance{VehicleID: active.ID, Date: models.DateOnly(now.AddDate(0, 0, -5)), Cost: 120.50, Description: "oil", MaintenanceType: "routine", Status: "completed"}
	if err := db.Create(rec).Error; err != nil {
		t.Fatalf("seed maintenance: %v", err)
	}
	old := &models.Maintenance{VehicleID: active.ID, Date: models.DateOnly(now.AddDate(0, 0, -90)), Cost: 999, Description: "major", MaintenanceType: "repair", Status: "completed"}
	if err := db.Create(old).Error; err != nil {
		t.Fatalf("seed maintenance: %v", err)
	}

	stats, err := Dashboard(db, now)
	if err != nil {
		t.Fatalf("Dashboard: %v", err)
	}
	if stats.Vehicles.Total != 3 || stats.Vehicles.Active != 1 || stats.Vehicles.Maintenance != 1 || stats.Vehicles.Inactive != 1 {
		t.Fatalf("unexpected vehicle counts: %+v", stats.Vehicles)
	}
	if stats.Drivers.Total != 2 || stats.Drivers.Active != 1 || stats.Drivers.Inactive != 1 {
		t.Fatalf("unexpected driver counts: %+v", stats.Drivers)
	}
	if stats.Trips.Total != 3 || stats.Trips.Completed != 1 || stats.Trips.InProgress != 1 || stats.Trips.Planned != 1 {
		t.Fatalf("unexpected trip counts: %+v", stats.Trips)
	}
	if stats.Trips.Recent30Days != 2 {
		t.Fatalf("expected 2 recent trips, got %d", stats.Trips.Recent30Days)
	}
	if stats.Totals.Distance != 175.01 {
		t.Fatalf("expected rounded distance 175.01, got %v", stats.Totals.Distance)
	}
	if stats.Totals.FuelUsed != 15 {
		t.Fatalf("expected fuel total 15, got %v", stats.Totals.FuelUsed)
	}
	if stats.Totals.RecentMaintenanceCost != 120.50 {
		t.Fatalf("expected recent maintenance cost 120.50, got %v", stats.Totals.RecentMaintenanceCost)
	}
}
