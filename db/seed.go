package db

import (
	"careermap/models"
	"careermap/vision"

	"github.com/jinzhu/gorm"
)

// Catálogo inicial de carreiras. Só é gravado na primeira subida, quando a
// tabela ainda está vazia; depois disso o catálogo é somente-leitura.
var carreirasSeed = []models.Carreira{
	{Nome: "Data/ML", Descricao: "Ciência de Dados e Machine Learning"},
	{Nome: "Back-end", Descricao: "Serviços e APIs"},
	{Nome: "Front-end", Descricao: "Interfaces Web/Mobile"},
	{Nome: "Embarcados", Descricao: "IoT e Sistemas Embarcados"},
	{Nome: "DevOps", Descricao: "CI/CD e Cloud"},
	{Nome: "Full-Stack", Descricao: "Front + Back"},
}

// Seed garante o catálogo de carreiras e espelha a tabela de pesos
// label -> carreira usada pelo scorer.
func Seed(database *gorm.DB) error {
	var count int
	if err := database.Model(&models.Carreira{}).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		for _, carreira := range carreirasSeed {
			if err := database.Create(&carreira).Error; err != nil {
				return err
			}
		}
	}

	return seedPesos(database)
}

func seedPesos(database *gorm.DB) error {
	var count int
	if err := database.Model(&models.PesoClasseCarreira{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	var carreiras []models.Carreira
	if err := database.Find(&carreiras).Error; err != nil {
		return err
	}
	porNome := make(map[string]int64, len(carreiras))
	for _, carreira := range carreiras {
		porNome[carreira.Nome] = carreira.ID
	}

	for label, pesos := range vision.Pesos {
		for carreira, peso := range pesos {
			id, ok := porNome[carreira]
			if !ok {
				// peso aponta para carreira fora do catálogo: ignora
				continue
			}
			row := models.PesoClasseCarreira{Label: label, CarreiraID: id, Peso: peso}
			if err := database.Create(&row).Error; err != nil {
				return err
			}
		}
	}

	return nil
}
