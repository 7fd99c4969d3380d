package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/openreception/porteiro/internal/models"
)

func strp(s string) *string { return &s }

func main() {
	dbPath := os.Getenv("PORTEIRO_DB_PATH")
	if dbPath == "" {
		dbPath = "./data/porteiro.db"
	}

	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{})
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	if err := db.AutoMigrate(
		&models.Operator{},
		&models.DocumentType{},
		&models.Destination{},
		&models.Visitor{},
		&models.CheckIn{},
		&models.CommonRestriction{},
		&models.PartialRestriction{},
		&models.PredictiveRestriction{},
		&models.Occurrence{},
		&models.Setting{},
		&models.NotificationProvider{},
	); err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	fmt.Println("✓ Database migrated successfully")

	// Document types
	documentTypes := []models.DocumentType{
		{Name: "National ID", Code: "id"},
		{Name: "Passport", Code: "passport"},
		{Name: "Driver's License", Code: "license"},
	}
	for i := range documentTypes {
		dt := &documentTypes[i]
		if err := db.Where(models.DocumentType{Code: dt.Code}).FirstOrCreate(dt).Error; err != nil {
			log.Fatal("Failed to seed document types:", err)
		}
	}
	fmt.Printf("✓ Seeded %d document types\n", len(documentTypes))

	// Destinations
	destinations := []models.Destination{
		{Name: "Front Office", Sector: "Administration", Active: true},
		{Name: "Warehouse", Sector: "Logistics", Active: true},
		{Name: "Server Room", Sector: "IT", Active: true},
	}
	for i := range destinations {
		d := &destinations[i]
		if err := db.Where(models.Destination{Name: d.Name}).FirstOrCreate(d).Error; err != nil {
			log.Fatal("Failed to seed destinations:", err)
		}
	}
	fmt.Printf("✓ Seeded %d destinations\n", len(destinations))

	// One operator per role. Default passwords are for local development only.
	operators := []struct {
		email string
		name  string
		role  string
	}{
		{"admin@example.com", "Admin", models.RoleAdmin},
		{"chief@example.com", "Security Chief", models.RoleSecurityChief},
		{"supervisor@example.com", "Supervisor", models.RoleSupervisor},
		{"attendant@example.com", "Attendant", models.RoleAttendant},
	}
	for _, seed := range operators {
		op := models.Operator{
			Email:   seed.email,
			Name:    seed.name,
			Role:    seed.role,
			Enabled: true,
		}
		if err := op.SetPassword("changeme123"); err != nil {
			log.Fatal("Failed to hash password:", err)
		}
		if err := db.Where(models.Operator{Email: seed.email}).FirstOrCreate(&op).Error; err != nil {
			log.Fatal("Failed to seed operators:", err)
		}
	}
	fmt.Printf("✓ Seeded %d operators\n", len(operators))

	// Sample visitor with an identity restriction
	visitor := models.Visitor{
		Name:           "JOAO DA SILVA",
		Document:       "12345678900",
		DocumentTypeID: documentTypes[0].ID,
		Phone:          "+5511999990000",
	}
	if err := db.Where(models.Visitor{Document: visitor.Document}).FirstOrCreate(&visitor).Error; err != nil {
		log.Fatal("Failed to seed visitor:", err)
	}

	expires := time.Now().Add(30 * 24 * time.Hour)
	common := models.CommonRestriction{
		VisitorID: visitor.ID,
		Reason:    "Prior incident at the warehouse",
		Severity:  models.SeverityMedium,
		Active:    true,
		ExpiresAt: &expires,
	}
	if err := db.Where(models.CommonRestriction{VisitorID: visitor.ID}).FirstOrCreate(&common).Error; err != nil {
		log.Fatal("Failed to seed common restriction:", err)
	}

	partial := models.PartialRestriction{
		PartialDocument: strp("999*"),
		Reason:          "Document series flagged by security",
		Severity:        models.SeverityLow,
		Active:          true,
	}
	if err := db.Where(models.PartialRestriction{Reason: partial.Reason}).FirstOrCreate(&partial).Error; err != nil {
		log.Fatal("Failed to seed partial restriction:", err)
	}

	predictive := models.PredictiveRestriction{
		NamePattern:    strp("*BLOCKED*"),
		DestinationIDs: fmt.Sprintf("[%d]", destinations[2].ID),
		Reason:         "Watchlist name match near restricted areas",
		Severity:       models.SeverityHigh,
		Active:         true,
		AutoOccurrence: true,
	}
	if err := db.Where(models.PredictiveRestriction{Reason: predictive.Reason}).FirstOrCreate(&predictive).Error; err != nil {
		log.Fatal("Failed to seed predictive restriction:", err)
	}
	fmt.Println("✓ Seeded sample visitor and restrictions")

	// Global auto-occurrence switch
	setting := models.Setting{
		Key:      models.SettingAutoOccurrence,
		Value:    "true",
		Category: "screening",
		Type:     "bool",
	}
	if err := db.Where(models.Setting{Key: setting.Key}).Assign(setting).FirstOrCreate(&setting).Error; err != nil {
		log.Fatal("Failed to seed settings:", err)
	}
	fmt.Println("✓ Seeded settings")

	fmt.Println("Done. Default operator password is changeme123")
}
