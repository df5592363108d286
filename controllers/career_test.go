package controllers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	dbpkg "careermap/db"
	"careermap/models"
	"careermap/planner"

	"github.com/gin-gonic/gin"
	"github.com/jinzhu/gorm"
	_ "github.com/jinzhu/gorm/dialects/sqlite"
	"go.uber.org/zap"
)

func setupTest(t *testing.T) (*gorm.DB, *gin.Engine) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	database, err := gorm.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("abrindo sqlite em memória: %v", err)
	}
	// banco em memória vive por conexão
	database.DB().SetMaxOpenConns(1)
	t.Cleanup(func() { database.Close() })

	if err := dbpkg.AutoMigrate(database); err != nil {
		t.Fatalf("automigrate: %v", err)
	}
	if err := dbpkg.Seed(database); err != nil {
		t.Fatalf("seed: %v", err)
	}

	// planner sem generator: modo degradado determinístico
	SetDependencies(planner.New(nil, zap.NewNop()), nil, zap.NewNop(), 0.35)

	r := gin.New()
	r.Use(dbpkg.SetDBtoContext(database))
	r.POST("/api/gerar-trilha", GerarTrilha)
	r.GET("/api/trilhas/:usuario_nome", ListarTrilhas)
	r.GET("/api/carreiras", ListarCarreiras)
	r.POST("/api/analisar-imagem", AnalisarImagem)
	r.GET("/api/deteccoes/:id", DetalharDeteccao)

	return database, r
}

func postJSON(t *testing.T, r *gin.Engine, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	b, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func getPath(t *testing.T, r *gin.Engine, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func prefsAna() planner.Preferencias {
	return planner.Preferencias{
		Nome:           "Ana",
		Interesses:     []string{"python"},
		Experiencia:    "iniciante",
		PrefereAreas:   []string{"Data/ML"},
		HorasPorSemana: 10,
	}
}

func TestGerarTrilhaFallbackPersisteTudo(t *testing.T) {
	database, r := setupTest(t)

	w := postJSON(t, r, "/api/gerar-trilha", prefsAna())
	if w.Code != http.StatusOK {
		t.Fatalf("status %d, body %s", w.Code, w.Body.String())
	}

	var resp CareerResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}

	if resp.Usuario != "Ana" {
		t.Fatalf("usuario: %q", resp.Usuario)
	}
	if len(resp.Trilhas) != 1 {
		t.Fatalf("esperava 1 trilha, obteve %d", len(resp.Trilhas))
	}
	trilha := resp.Trilhas[0]
	if trilha.Carreira != "Data/ML" {
		t.Fatalf("carreira: %q", trilha.Carreira)
	}
	if len(trilha.Passos) != 3 {
		t.Fatalf("esperava 3 passos, obteve %d", len(trilha.Passos))
	}
	horas := []int{20, 10, 25}
	for i, passo := range trilha.Passos {
		if passo.Ordem != i+1 {
			t.Fatalf("passos fora de ordem: %+v", trilha.Passos)
		}
		if passo.CargaHoraria != horas[i] {
			t.Fatalf("carga do passo %d: %d", i+1, passo.CargaHoraria)
		}
	}

	var nTrilhas, nCursos, nItens int
	database.Model(&models.Trilha{}).Count(&nTrilhas)
	database.Model(&models.Curso{}).Count(&nCursos)
	database.Model(&models.TrilhaItem{}).Count(&nItens)
	if nTrilhas != 1 || nCursos != 3 || nItens != 3 {
		t.Fatalf("persistência: trilhas=%d cursos=%d itens=%d", nTrilhas, nCursos, nItens)
	}

	var usuario models.Usuario
	if err := database.Where("nome = ?", "Ana").First(&usuario).Error; err != nil {
		t.Fatalf("usuário não criado: %v", err)
	}
	if usuario.Email != "ana@example.com" {
		t.Fatalf("email sintético: %q", usuario.Email)
	}

	var itens []models.TrilhaItem
	database.Where("trilha_id = ?", trilha.TrilhaID).Order("ordem asc").Find(&itens)
	for i, item := range itens {
		if item.Ordem != i+1 {
			t.Fatalf("ordem persistida: %+v", itens)
		}
	}
}

func TestGerarTrilhaCarreiraDesconhecidaCaiNaPrimeira(t *testing.T) {
	database, r := setupTest(t)

	prefs := prefsAna()
	prefs.PrefereAreas = []string{"Mobile"} // fora do catálogo

	w := postJSON(t, r, "/api/gerar-trilha", prefs)
	if w.Code != http.StatusOK {
		t.Fatalf("status %d, body %s", w.Code, w.Body.String())
	}

	var resp CareerResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Trilhas[0].Carreira != "Data/ML" {
		t.Fatalf("esperava a primeira carreira do catálogo, obteve %q", resp.Trilhas[0].Carreira)
	}

	var trilha models.Trilha
	if err := database.First(&trilha).Error; err != nil {
		t.Fatalf("trilha não persistida: %v", err)
	}
	var carreira models.Carreira
	if err := database.First(&carreira, trilha.CarreiraID).Error; err != nil {
		t.Fatalf("referência de carreira pendurada: %v", err)
	}
}

func TestGerarTrilhaReusaUsuario(t *testing.T) {
	database, r := setupTest(t)

	for i := 0; i < 2; i++ {
		if w := postJSON(t, r, "/api/gerar-trilha", prefsAna()); w.Code != http.StatusOK {
			t.Fatalf("chamada %d: status %d", i+1, w.Code)
		}
	}

	var nUsuarios, nTrilhas int
	database.Model(&models.Usuario{}).Count(&nUsuarios)
	database.Model(&models.Trilha{}).Count(&nTrilhas)
	if nUsuarios != 1 {
		t.Fatalf("esperava 1 usuário, obteve %d", nUsuarios)
	}
	if nTrilhas != 2 {
		t.Fatalf("esperava 2 trilhas, obteve %d", nTrilhas)
	}
}

func TestGerarTrilhaSemNome(t *testing.T) {
	_, r := setupTest(t)

	w := postJSON(t, r, "/api/gerar-trilha", map[string]any{"interesses": []string{"python"}})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("esperava 400, obteve %d", w.Code)
	}
}

func TestListarTrilhasUsuarioDesconhecido(t *testing.T) {
	_, r := setupTest(t)

	w := getPath(t, r, "/api/trilhas/Ninguem")
	if w.Code != http.StatusOK {
		t.Fatalf("usuário desconhecido deveria dar 200, obteve %d", w.Code)
	}

	var resp CareerResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Usuario != "Ninguem" || len(resp.Trilhas) != 0 {
		t.Fatalf("esperava lista vazia: %+v", resp)
	}
}

func TestListarTrilhasDepoisDeGerar(t *testing.T) {
	_, r := setupTest(t)

	if w := postJSON(t, r, "/api/gerar-trilha", prefsAna()); w.Code != http.StatusOK {
		t.Fatalf("gerar: status %d", w.Code)
	}

	w := getPath(t, r, "/api/trilhas/Ana")
	if w.Code != http.StatusOK {
		t.Fatalf("status %d", w.Code)
	}

	var resp CareerResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Trilhas) != 1 {
		t.Fatalf("esperava 1 trilha, obteve %d", len(resp.Trilhas))
	}

	trilha := resp.Trilhas[0]
	if len(trilha.Passos) != 3 {
		t.Fatalf("esperava 3 passos, obteve %d", len(trilha.Passos))
	}
	for i, passo := range trilha.Passos {
		if passo.Ordem != i+1 {
			t.Fatalf("passos fora de ordem: %+v", trilha.Passos)
		}
		// na listagem a descrição é o título do curso
		if passo.Descricao != passo.Titulo {
			t.Fatalf("descrição deveria repetir o título: %+v", passo)
		}
	}
}

func TestListarCarreirasSeed(t *testing.T) {
	_, r := setupTest(t)

	w := getPath(t, r, "/api/carreiras")
	if w.Code != http.StatusOK {
		t.Fatalf("status %d", w.Code)
	}

	var resp struct {
		Carreiras []models.Carreira `json:"carreiras"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Carreiras) != 6 {
		t.Fatalf("esperava 6 carreiras do seed, obteve %d", len(resp.Carreiras))
	}
	if resp.Carreiras[0].Nome != "Data/ML" {
		t.Fatalf("primeira carreira: %q", resp.Carreiras[0].Nome)
	}
}
