package db

import (
	"careermap/config"
	"careermap/models"

	"github.com/jinzhu/gorm"
	_ "github.com/jinzhu/gorm/dialects/postgres"
	_ "github.com/jinzhu/gorm/dialects/sqlite"
)

// Connect abre a conexão com o banco (sqlite3 por padrão) e cria as tabelas
// que ainda não existem.
func Connect(conf config.Configuration) (*gorm.DB, error) {
	var (
		database *gorm.DB
		err      error
	)

	if conf.Database == "postgres" || conf.Database == "postgresql" {
		path := "host=" + conf.DbHost + " port=" + conf.DbPort
		path += " user=" + conf.DbUser + " dbname=" + conf.DbName
		path += " password=" + conf.DbPass
		database, err = gorm.Open("postgres", path)
	} else {
		database, err = gorm.Open("sqlite3", conf.DbPath)
	}
	if err != nil {
		return nil, err
	}

	database.LogMode(conf.Debug)

	if err := AutoMigrate(database); err != nil {
		database.Close()
		return nil, err
	}

	return database, nil
}

func AutoMigrate(database *gorm.DB) error {
	return database.AutoMigrate(
		&models.Usuario{},
		&models.Carreira{},
		&models.Curso{},
		&models.PesoClasseCarreira{},
		&models.Deteccao{},
		&models.DetalheDeteccao{},
		&models.Trilha{},
		&models.TrilhaItem{},
	).Error
}
