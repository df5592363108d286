package controllers

import (
	"fmt"
	"net/http"
	"sort"
	"strings"

	dbpkg "careermap/db"
	"careermap/models"
	"careermap/planner"

	"github.com/gin-gonic/gin"
	"github.com/jinzhu/gorm"
	"go.uber.org/zap"
)

// Provedor gravado nos cursos materializados a partir de um plano gerado.
const provedorIA = "IA"

type TrilhaItemOut struct {
	Ordem        int    `json:"ordem"`
	Titulo       string `json:"titulo"`
	Descricao    string `json:"descricao"`
	CargaHoraria int    `json:"carga_horaria"`
}

type TrilhaOut struct {
	TrilhaID      int64           `json:"trilha_id"`
	Carreira      string          `json:"carreira"`
	Justificativa string          `json:"justificativa"`
	Passos        []TrilhaItemOut `json:"passos"`
}

type CareerResponse struct {
	Usuario string      `json:"usuario"`
	Trilhas []TrilhaOut `json:"trilhas"`
}

// POST /api/gerar-trilha
//
// Gera o plano (IA ou fallback) e materializa tudo em uma única transação:
// usuário (find-or-create), trilha, e um curso + trilha_item por passo.
// Falha no meio não deixa linhas órfãs.
func GerarTrilha(c *gin.Context) {
	var prefs planner.Preferencias
	if err := c.ShouldBindJSON(&prefs); err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}

	database := dbpkg.DBInstance(c)
	if database == nil {
		RespondError(c, "db não configurado no contexto", http.StatusInternalServerError)
		return
	}

	var carreiras []models.Carreira
	if err := database.Order("id asc").Find(&carreiras).Error; err != nil {
		RespondError(c, err.Error(), http.StatusInternalServerError)
		return
	}
	if len(carreiras) == 0 {
		RespondError(c, "nenhuma carreira cadastrada", http.StatusInternalServerError)
		return
	}

	nomes := make([]string, 0, len(carreiras))
	for _, carreira := range carreiras {
		nomes = append(nomes, carreira.Nome)
	}

	plano := trilhaPlanner.Gerar(c.Request.Context(), prefs, nomes)

	// A carreira da trilha nunca pode ficar pendurada: se a escolha da IA não
	// casar com o catálogo, vale a primeira carreira conhecida.
	carreira := carreiras[0]
	for _, cand := range carreiras {
		if cand.Nome == plano.Carreira {
			carreira = cand
			break
		}
	}

	tx := database.Begin()
	if tx.Error != nil {
		RespondError(c, tx.Error.Error(), http.StatusInternalServerError)
		return
	}

	usuario, err := findOrCreateUsuario(tx, prefs.Nome)
	if err != nil {
		tx.Rollback()
		RespondError(c, err.Error(), http.StatusInternalServerError)
		return
	}

	trilha := models.Trilha{
		UsuarioID:  usuario.ID,
		CarreiraID: carreira.ID,
		ScoreTotal: nil,
	}
	if err := tx.Create(&trilha).Error; err != nil {
		tx.Rollback()
		RespondError(c, err.Error(), http.StatusInternalServerError)
		return
	}

	itens := make([]TrilhaItemOut, 0, len(plano.Passos))
	for _, passo := range plano.Passos {
		curso := models.Curso{
			Titulo:       passo.Titulo,
			Provedor:     provedorIA,
			CargaHoraria: passo.CargaHoraria,
		}
		if err := tx.Create(&curso).Error; err != nil {
			tx.Rollback()
			RespondError(c, err.Error(), http.StatusInternalServerError)
			return
		}

		item := models.TrilhaItem{
			TrilhaID: trilha.ID,
			CursoID:  curso.ID,
			Ordem:    passo.Ordem,
		}
		if err := tx.Create(&item).Error; err != nil {
			tx.Rollback()
			RespondError(c, err.Error(), http.StatusInternalServerError)
			return
		}

		itens = append(itens, TrilhaItemOut{
			Ordem:        passo.Ordem,
			Titulo:       passo.Titulo,
			Descricao:    passo.Descricao,
			CargaHoraria: passo.CargaHoraria,
		})
	}

	if err := tx.Commit().Error; err != nil {
		tx.Rollback()
		RespondError(c, err.Error(), http.StatusInternalServerError)
		return
	}

	// Reordena defensivamente: a ordem de criação deveria bater, mas o
	// contrato é ordenar por ordem.
	sort.Slice(itens, func(i, j int) bool { return itens[i].Ordem < itens[j].Ordem })

	logger.Info("trilha gerada",
		zap.String("usuario", prefs.Nome),
		zap.String("carreira", carreira.Nome),
		zap.Int("passos", len(itens)),
		zap.Int64("trilha_id", trilha.ID),
	)

	RespondSuccess(c, CareerResponse{
		Usuario: prefs.Nome,
		Trilhas: []TrilhaOut{{
			TrilhaID:      trilha.ID,
			Carreira:      carreira.Nome,
			Justificativa: plano.Justificativa,
			Passos:        itens,
		}},
	})
}

// findOrCreateUsuario busca o usuário por nome exato e cria com e-mail
// sintético quando não existe. Não há índice único em nome: chamadas
// concorrentes com o mesmo nome podem duplicar o usuário (gap conhecido).
func findOrCreateUsuario(tx *gorm.DB, nome string) (*models.Usuario, error) {
	var usuario models.Usuario
	err := tx.Where("nome = ?", nome).First(&usuario).Error
	if err == nil {
		return &usuario, nil
	}
	if !gorm.IsRecordNotFoundError(err) {
		return nil, err
	}

	usuario = models.Usuario{
		Nome:  nome,
		Email: fmt.Sprintf("%s@example.com", strings.ReplaceAll(strings.ToLower(nome), " ", "")),
	}
	if err := tx.Create(&usuario).Error; err != nil {
		return nil, err
	}
	return &usuario, nil
}

// GET /api/trilhas/:usuario_nome
//
// Usuário desconhecido não é erro: responde lista vazia.
func ListarTrilhas(c *gin.Context) {
	nome := c.Param("usuario_nome")

	database := dbpkg.DBInstance(c)
	if database == nil {
		RespondError(c, "db não configurado no contexto", http.StatusInternalServerError)
		return
	}

	var usuario models.Usuario
	if err := database.Where("nome = ?", nome).First(&usuario).Error; err != nil {
		if gorm.IsRecordNotFoundError(err) {
			RespondSuccess(c, CareerResponse{Usuario: nome, Trilhas: []TrilhaOut{}})
			return
		}
		RespondError(c, err.Error(), http.StatusInternalServerError)
		return
	}

	var trilhas []models.Trilha
	if err := database.Where("usuario_id = ?", usuario.ID).Find(&trilhas).Error; err != nil {
		RespondError(c, err.Error(), http.StatusInternalServerError)
		return
	}

	out := make([]TrilhaOut, 0, len(trilhas))
	for _, trilha := range trilhas {
		nomeCarreira := "Desconhecida"
		var carreira models.Carreira
		if err := database.First(&carreira, trilha.CarreiraID).Error; err == nil {
			nomeCarreira = carreira.Nome
		}

		var itens []models.TrilhaItem
		if err := database.Where("trilha_id = ?", trilha.ID).Order("ordem asc").Find(&itens).Error; err != nil {
			RespondError(c, err.Error(), http.StatusInternalServerError)
			return
		}

		passos := make([]TrilhaItemOut, 0, len(itens))
		for _, item := range itens {
			var curso models.Curso
			if err := database.First(&curso, item.CursoID).Error; err != nil {
				continue
			}
			passos = append(passos, TrilhaItemOut{
				Ordem:  item.Ordem,
				Titulo: curso.Titulo,
				// A descrição original do passo não é persistida; o título do
				// curso faz as vezes dela aqui.
				Descricao:    curso.Titulo,
				CargaHoraria: curso.CargaHoraria,
			})
		}

		out = append(out, TrilhaOut{
			TrilhaID:      trilha.ID,
			Carreira:      nomeCarreira,
			Justificativa: "Trilha previamente gerada",
			Passos:        passos,
		})
	}

	RespondSuccess(c, CareerResponse{Usuario: nome, Trilhas: out})
}

// GET /api/carreiras
func ListarCarreiras(c *gin.Context) {
	database := dbpkg.DBInstance(c)
	if database == nil {
		RespondError(c, "db não configurado no contexto", http.StatusInternalServerError)
		return
	}

	var carreiras []models.Carreira
	if err := database.Order("id asc").Find(&carreiras).Error; err != nil {
		RespondError(c, err.Error(), http.StatusInternalServerError)
		return
	}

	RespondSuccess(c, gin.H{"carreiras": carreiras})
}
