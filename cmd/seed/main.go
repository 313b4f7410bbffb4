package main

import (
	"time"

	"github.com/egzit/egzit/internal/config"
	"github.com/egzit/egzit/internal/constants"
	"github.com/egzit/egzit/internal/logger"
	"github.com/egzit/egzit/internal/models"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()
	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}); err != nil {
		stdLog.Fatalf("Failed to connect database: %v", err)
	}

	if err := models.AutoMigrate(); err != nil {
		stdLog.Fatalf("Failed to migrate database: %v", err)
	}

	// Crews
	movers := []models.Mover{
		{Name: "Blue Mountain Movers", Phone: "+1-876-555-0101", VehicleClass: constants.VehicleClassTruck, IsActive: true},
		{Name: "Harbour City Haulage", Phone: "+1-876-555-0102", VehicleClass: constants.VehicleClassTruck, IsActive: true},
		{Name: "Liguanea Light Transport", Phone: "+1-876-555-0103", VehicleClass: constants.VehicleClassCar, IsActive: true},
		{Name: "North Coast Removals", Phone: "+1-876-555-0104", VehicleClass: constants.VehicleClassTruck, IsActive: false},
	}

	for _, mover := range movers {
		var existing models.Mover
		if err := models.DB.Where("name = ?", mover.Name).First(&existing).Error; err != nil {
			if err := models.DB.Create(&mover).Error; err != nil {
				stdLog.Printf("Failed to create mover %s: %v", mover.Name, err)
			} else {
				stdLog.Printf("Created mover: %s", mover.Name)
			}
		} else {
			stdLog.Printf("Mover already exists: %s", mover.Name)
		}
	}

	// Demo customer
	demoEmail := "demo@egzit.test"
	var user models.User
	if err := models.DB.Where("email = ?", demoEmail).First(&user).Error; err != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte("demo12345"), bcrypt.DefaultCost)
		if err != nil {
			stdLog.Fatalf("Failed to hash demo password: %v", err)
		}
		user = models.User{
			Email:        demoEmail,
			PasswordHash: string(hash),
			DisplayName:  "Demo Customer",
			Phone:        "+1-876-555-0199",
			Status:       constants.UserStatusActive,
		}
		if err := models.DB.Create(&user).Error; err != nil {
			stdLog.Fatalf("Failed to create demo user: %v", err)
		}
		stdLog.Printf("Created demo user: %s (password: demo12345)", demoEmail)
	} else {
		stdLog.Printf("Demo user already exists: %s", demoEmail)
	}

	// Sample moves, keyed on fixed move numbers so reruns stay idempotent
	kingstonLat, kingstonLng := 17.9714, -76.7920
	mobayLat, mobayLng := 18.4762, -77.8939
	portmoreLat, portmoreLng := 17.9546, -76.8827

	pendingMove := models.Move{
		MoveNo:          "EGDEMO0000000000000001",
		UserID:          user.ID,
		Name:            "Apartment move to Montego Bay",
		PickupAddress:   "12 Hope Road, Kingston",
		DeliveryAddress: "4 Gloucester Avenue, Montego Bay",
		PickupLat:       &kingstonLat,
		PickupLng:       &kingstonLng,
		DeliveryLat:     &mobayLat,
		DeliveryLng:     &mobayLng,
		MoveDate:        time.Now().AddDate(0, 0, 14).Truncate(24 * time.Hour),
		Status:          constants.MoveStatusPending,
	}
	seedMove(stdLog.Printf, &pendingMove)

	approvedMove := models.Move{
		MoveNo:          "EGDEMO0000000000000002",
		UserID:          user.ID,
		Name:            "Townhouse move to Portmore",
		PickupAddress:   "25 Barbican Road, Kingston",
		DeliveryAddress: "18 Braeton Parkway, Portmore",
		PickupLat:       &kingstonLat,
		PickupLng:       &kingstonLng,
		DeliveryLat:     &portmoreLat,
		DeliveryLng:     &portmoreLng,
		MoveDate:        time.Now().AddDate(0, 0, 7).Truncate(24 * time.Hour),
		Status:          constants.MoveStatusApproved,
	}
	if seedMove(stdLog.Printf, &approvedMove) {
		validUntil := time.Now().AddDate(0, 0, 7)
		quote := models.Quote{
			MoveID:       approvedMove.ID,
			BaseFee:      models.NewMoneyFromDecimal(decimal.NewFromFloat(12000)),
			DistanceFee:  models.NewMoneyFromDecimal(decimal.NewFromFloat(3500)),
			WeightFee:    models.NewMoneyFromDecimal(decimal.NewFromFloat(2000)),
			SpecialItems: models.NewMoneyFromDecimal(decimal.NewFromFloat(1500)),
			Insurance:    models.NewMoneyFromDecimal(decimal.NewFromFloat(800)),
			Tax:          models.NewMoneyFromDecimal(decimal.NewFromFloat(2970)),
			ValidUntil:   &validUntil,
			Notes:        "Includes piano handling",
			Status:       constants.QuoteStatusPending,
		}
		quote.Total = quote.SumComponents()
		if err := models.DB.Create(&quote).Error; err != nil {
			stdLog.Printf("Failed to create quote for %s: %v", approvedMove.MoveNo, err)
		} else {
			if err := models.DB.Model(&models.Move{}).Where("id = ?", approvedMove.ID).Update("quote_id", quote.ID).Error; err != nil {
				stdLog.Printf("Failed to link quote to %s: %v", approvedMove.MoveNo, err)
			}
			stdLog.Printf("Created quote for %s (total %s)", approvedMove.MoveNo, quote.Total.String())
		}
	}

	stdLog.Println("Seed finished")
}

// seedMove creates the move when its move number is unseen, reporting
// whether a row was inserted.
func seedMove(printf func(string, ...interface{}), move *models.Move) bool {
	var existing models.Move
	if err := models.DB.Where("move_no = ?", move.MoveNo).First(&existing).Error; err == nil {
		printf("Move already exists: %s", move.MoveNo)
		*move = existing
		return false
	}
	if err := models.DB.Create(move).Error; err != nil {
		printf("Failed to create move %s: %v", move.MoveNo, err)
		return false
	}
	printf("Created move: %s", move.MoveNo)
	return true
}
