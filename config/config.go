package config

import (
	"fmt"
	"os"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/cmondlane/moztickets/internal/models"
)

type Config struct {
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	RedisAddr     string
	RedisPassword string

	SeedDemoData bool
}

func LoadConfig() (*Config, error) {
	return &Config{
		DBHost:        os.Getenv("DB_HOST"),
		DBPort:        os.Getenv("DB_PORT"),
		DBUser:        os.Getenv("DB_USER"),
		DBPassword:    os.Getenv("DB_PASSWORD"),
		DBName:        os.Getenv("DB_NAME"),
		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		SeedDemoData:  os.Getenv("SEED_DEMO_DATA") == "true",
	}, nil
}

func enableUUIDExtension(db *gorm.DB) error {
	return db.Exec("CREATE EXTENSION IF NOT EXISTS \"uuid-ossp\"").Error
}

func InitDatabase(cfg *Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=UTC",
		cfg.DBHost, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBPort,
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	if err := enableUUIDExtension(db); err != nil {
		return nil, err
	}

	err = db.AutoMigrate(
		&models.Role{}, &models.User{},
		&models.Artist{}, &models.Event{}, &models.TicketType{},
		&models.VideoHighlight{}, &models.Ad{},
		&models.Purchase{}, &models.PurchaseTicket{}, &models.ValidationRecord{},
	)
	if err != nil {
		return nil, err
	}

	seedRoles(db)
	if cfg.SeedDemoData {
		seedDemoCatalog(db)
	}

	return db, nil
}

func seedRoles(db *gorm.DB) {
	roles := []models.Role{
		{Name: models.RoleAdmin},
		{Name: models.RoleStaff},
		{Name: models.RoleUser},
	}

	for _, role := range roles {
		var existingRole models.Role
		result := db.Where("name = ?", role.Name).First(&existingRole)
		if result.Error != nil {
			db.Create(&role)
		}
	}
}

// seedDemoCatalog loads the storefront's demo events, artists, videos and
// ads when the catalog is empty. Purchases are never seeded.
func seedDemoCatalog(db *gorm.DB) {
	var count int64
	db.Model(&models.Event{}).Count(&count)
	if count > 0 {
		return
	}

	mrBow := models.Artist{
		Name:  "Mr. Bow",
		Photo: "https://images.unsplash.com/photo-1511671782779-c97d3d27a1d4?auto=format&fit=crop&q=80&w=400&h=400",
		Bio:   "Conhecido como o Rei da Marrabenta Moderna, Mr. Bow é um dos artistas mais influentes de Moçambique.",
	}
	lizha := models.Artist{
		Name:  "Lizha James",
		Photo: "https://images.unsplash.com/photo-1516715662728-7c62ee4150a8?auto=format&fit=crop&q=80&w=400&h=400",
		Bio:   "Diva da música moçambicana, famosa pelo seu estilo enérgico e fusão de Marrabenta, Reggae e R&B.",
	}
	db.Create(&mrBow)
	db.Create(&lizha)

	events := []models.Event{
		{
			Title:       "Festival da Marrabenta 2024",
			Category:    "festival",
			Description: "A maior celebração da música tradicional moçambicana com artistas de renome nacional e internacional.",
			Date:        time.Date(2024, 12, 15, 18, 0, 0, 0, time.UTC),
			Location:    "Centro Cultural Franco-Moçambicano",
			City:        "Maputo",
			Image:       "https://images.unsplash.com/photo-1533174072545-7a4b6ad7a6c3?auto=format&fit=crop&q=80&w=800&h=400",
			Organizer:   "C&O Entretenimento",
			TicketTypes: []models.TicketType{
				{Name: "Bilhete Normal", Price: 1500, Available: 500, Description: "Acesso à pista geral e zona de restauração."},
				{Name: "Bilhete VIP", Price: 4500, Available: 100, Description: "Acesso frontal, zona exclusiva e 3 bebidas de boas-vindas."},
			},
		},
		{
			Title:       "Mr. Bow Live: King of Mozambique",
			Category:    "concert",
			Description: "O espectáculo mais esperado do ano. Mr. Bow apresenta os seus maiores sucessos com convidados especiais.",
			Date:        time.Date(2024, 12, 30, 21, 0, 0, 0, time.UTC),
			Location:    "Pavilhão do Maxaquene",
			City:        "Maputo",
			Image:       "https://images.unsplash.com/photo-1493225255756-d9584f8606e9?auto=format&fit=crop&q=80&w=800&h=400",
			Organizer:   "Bawito Music",
			ArtistID:    &mrBow.ID,
			TicketTypes: []models.TicketType{
				{Name: "Pista Normal", Price: 1000, Available: 2000, Description: "Acesso à pista principal."},
				{Name: "VIP Gold Lounge", Price: 6500, Available: 80, Description: "Lounge elevado, Open Bar até às 23h e kit Bawito."},
			},
		},
		{
			Title:       "Beach Party Bilene 2024",
			Category:    "festival",
			Description: "A festa de areia branca que marca o fim de ano na Lagoa do Bilene. DJs nacionais e internacionais.",
			Date:        time.Date(2024, 12, 28, 14, 0, 0, 0, time.UTC),
			Location:    "Praia do Bilene",
			City:        "Bilene",
			Image:       "https://images.unsplash.com/photo-1501281668745-f7f57925c3b4?auto=format&fit=crop&q=80&w=800&h=400",
			Organizer:   "Gaza Vibes",
			TicketTypes: []models.TicketType{
				{Name: "Acesso Geral", Price: 1200, Available: 1500, Description: "Passe de dia único para a praia."},
				{Name: "VIP Sand Stage", Price: 3500, Available: 150, Description: "Acesso ao palco principal, zona de sombra e bar exclusivo."},
			},
		},
		{
			Title:       "Noite de Stand-up Comedy",
			Category:    "theater",
			Description: "Gargalhadas garantidas com os melhores comediantes nacionais num ambiente intimista.",
			Date:        time.Date(2024, 11, 20, 20, 0, 0, 0, time.UTC),
			Location:    "Cine-Teatro Gil Vicente",
			City:        "Maputo",
			Image:       "https://images.unsplash.com/photo-1585699324551-f6c309eedee5?auto=format&fit=crop&q=80&w=800&h=400",
			Organizer:   "Maputo Comedy Club",
			TicketTypes: []models.TicketType{
				{Name: "Plateia", Price: 750, Available: 200, Description: "Lugar sentado na plateia geral."},
				{Name: "Camarote VIP", Price: 2000, Available: 20, Description: "Melhor vista do palco e serviço de mesa."},
			},
		},
	}
	for i := range events {
		db.Create(&events[i])
	}

	videos := []models.VideoHighlight{
		{Title: "Aftermovie Festival da Marrabenta", Description: "Os melhores momentos da edição passada.", Type: "link", URL: "https://www.youtube.com/embed/dQw4w9WgXcQ", Thumbnail: "https://images.unsplash.com/photo-1470225620780-dba8ba36b745?auto=format&fit=crop&q=80&w=800&h=450", Active: true},
		{Title: "Mr. Bow - Especial Live", Description: "Um ensaio exclusivo para o grande show.", Type: "link", URL: "https://www.youtube.com/embed/dQw4w9WgXcQ", Thumbnail: "https://images.unsplash.com/photo-1493225255756-d9584f8606e9?auto=format&fit=crop&q=80&w=800&h=450", Active: true},
		{Title: "Vibes de Verão Bilene", Description: "O sol, a praia e a música que você ama.", Type: "link", URL: "https://www.youtube.com/embed/dQw4w9WgXcQ", Thumbnail: "https://images.unsplash.com/photo-1507525428034-b723cf961d3e?auto=format&fit=crop&q=80&w=800&h=450", Active: true},
	}
	for i := range videos {
		db.Create(&videos[i])
	}

	ads := []models.Ad{
		{Title: "Desconto M-Pesa 10%", ImageURL: "https://images.unsplash.com/photo-1611162617213-7d7a39e9b1d7?auto=format&fit=crop&q=80&w=800&h=300", Link: "#", Active: true},
	}
	for i := range ads {
		db.Create(&ads[i])
	}
}
