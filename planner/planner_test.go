package planner

import (
	"context"
	"errors"
	"strings"
	"testing"

	"go.uber.org/zap"
)

type stubGenerator struct {
	response   string
	err        error
	lastSystem string
	lastUser   string
}

func (s *stubGenerator) GenerateContent(_ context.Context, system, user string) (string, error) {
	s.lastSystem = system
	s.lastUser = user
	if s.err != nil {
		return "", s.err
	}
	return s.response, nil
}

var carreirasTeste = []string{"Data/ML", "Back-end", "Front-end"}

func prefsTeste() Preferencias {
	return Preferencias{
		Nome:           "Ana",
		Interesses:     []string{"python"},
		Experiencia:    "iniciante",
		PrefereAreas:   []string{"Data/ML"},
		HorasPorSemana: 10,
	}
}

func assertFallback(t *testing.T, plano *Plano, carreira string) {
	t.Helper()
	if plano.Carreira != carreira {
		t.Fatalf("carreira do fallback: esperava %q, obteve %q", carreira, plano.Carreira)
	}
	if len(plano.Passos) != 3 {
		t.Fatalf("fallback deveria ter 3 passos, obteve %d", len(plano.Passos))
	}
	horas := []int{20, 10, 25}
	for i, passo := range plano.Passos {
		if passo.Ordem != i+1 {
			t.Fatalf("passo %d com ordem %d", i, passo.Ordem)
		}
		if passo.CargaHoraria != horas[i] {
			t.Fatalf("passo %d com carga %d, esperava %d", i, passo.CargaHoraria, horas[i])
		}
		if passo.Titulo == "" || passo.Descricao == "" {
			t.Fatalf("passo %d incompleto: %+v", i, passo)
		}
	}
	if plano.Justificativa == "" {
		t.Fatal("fallback sem justificativa")
	}
}

func TestGerarSemCredencialUsaFallback(t *testing.T) {
	p := New(nil, zap.NewNop())

	plano := p.Gerar(context.Background(), prefsTeste(), carreirasTeste)
	assertFallback(t, plano, "Data/ML")
}

func TestGerarSemCredencialSemAreasPreferidas(t *testing.T) {
	p := New(nil, zap.NewNop())
	prefs := prefsTeste()
	prefs.PrefereAreas = nil

	plano := p.Gerar(context.Background(), prefs, carreirasTeste)
	assertFallback(t, plano, "Data/ML") // primeira carreira conhecida
}

func TestGerarErroNaChamadaUsaFallback(t *testing.T) {
	stub := &stubGenerator{err: errors.New("boom")}
	p := New(stub, zap.NewNop())

	plano := p.Gerar(context.Background(), prefsTeste(), carreirasTeste)
	assertFallback(t, plano, "Data/ML")
}

func TestGerarRespostaNaoJSONUsaFallback(t *testing.T) {
	stub := &stubGenerator{response: "claro! aqui vai um plano de estudos..."}
	p := New(stub, zap.NewNop())

	plano := p.Gerar(context.Background(), prefsTeste(), carreirasTeste)
	assertFallback(t, plano, "Data/ML")
}

func TestGerarRespostaValida(t *testing.T) {
	stub := &stubGenerator{response: `{
		"carreira": "Back-end",
		"justificativa": "Pelo interesse em APIs",
		"passos": [
			{"ordem": 1, "titulo": "HTTP básico", "descricao": "Verbos e status", "carga_horaria": 8},
			{"ordem": 2, "titulo": "SQL", "descricao": "Modelagem", "carga_horaria": 12}
		]
	}`}
	p := New(stub, zap.NewNop())

	plano := p.Gerar(context.Background(), prefsTeste(), carreirasTeste)

	if plano.Carreira != "Back-end" {
		t.Fatalf("carreira: %q", plano.Carreira)
	}
	if plano.Justificativa != "Pelo interesse em APIs" {
		t.Fatalf("justificativa: %q", plano.Justificativa)
	}
	if len(plano.Passos) != 2 {
		t.Fatalf("passos: %d", len(plano.Passos))
	}
	if plano.Passos[1].CargaHoraria != 12 {
		t.Fatalf("carga do passo 2: %d", plano.Passos[1].CargaHoraria)
	}

	if stub.lastSystem == "" || !strings.Contains(stub.lastSystem, "JSON") {
		t.Fatalf("system prompt inesperado: %q", stub.lastSystem)
	}
	if !strings.Contains(stub.lastUser, "Ana") || !strings.Contains(stub.lastUser, "Data/ML, Back-end, Front-end") {
		t.Fatalf("prompt sem o perfil/carreiras: %q", stub.lastUser)
	}
}

func TestGerarRespostaComCercaMarkdown(t *testing.T) {
	stub := &stubGenerator{response: "```json\n{\"carreira\": \"Front-end\", \"justificativa\": \"x\", \"passos\": []}\n```"}
	p := New(stub, zap.NewNop())

	plano := p.Gerar(context.Background(), prefsTeste(), carreirasTeste)
	if plano.Carreira != "Front-end" {
		t.Fatalf("esperava Front-end, obteve %q", plano.Carreira)
	}
	if len(plano.Passos) != 0 {
		t.Fatalf("esperava zero passos, obteve %d", len(plano.Passos))
	}
}

func TestGerarNormalizaCamposAusentes(t *testing.T) {
	stub := &stubGenerator{response: `{
		"passos": [
			{"descricao": "algo"},
			{"titulo": "Segundo", "carga_horaria": 0},
			{"ordem": 7, "titulo": "Sétimo", "carga_horaria": "15"}
		]
	}`}
	p := New(stub, zap.NewNop())

	plano := p.Gerar(context.Background(), prefsTeste(), carreirasTeste)

	// carreira ausente -> primeira área preferida
	if plano.Carreira != "Data/ML" {
		t.Fatalf("carreira: %q", plano.Carreira)
	}
	if plano.Justificativa == "" {
		t.Fatal("justificativa default ausente")
	}

	p1 := plano.Passos[0]
	if p1.Ordem != 1 || p1.Titulo != "Passo 1" || p1.Descricao != "algo" || p1.CargaHoraria != 10 {
		t.Fatalf("passo 1 normalizado errado: %+v", p1)
	}

	p2 := plano.Passos[1]
	if p2.Ordem != 2 || p2.Titulo != "Segundo" || p2.Descricao != "" || p2.CargaHoraria != 10 {
		t.Fatalf("passo 2 normalizado errado: %+v", p2)
	}

	p3 := plano.Passos[2]
	if p3.Ordem != 7 || p3.CargaHoraria != 15 {
		t.Fatalf("passo 3 normalizado errado: %+v", p3)
	}
}

func TestExtractJSON(t *testing.T) {
	cases := map[string]string{
		"{\"a\":1}":                      `{"a":1}`,
		"```json\n{\"a\":1}\n```":        `{"a":1}`,
		"```\n{\"a\":1}\n```":            `{"a":1}`,
		"  \n{\"a\":1}\n  ":              `{"a":1}`,
		"`{\"a\":1}`":                    `{"a":1}`,
		"```json\n{\"a\":\"b\"}\n```\n ": `{"a":"b"}`,
	}
	for in, want := range cases {
		if got := extractJSON(in); got != want {
			t.Fatalf("extractJSON(%q) = %q, esperava %q", in, got, want)
		}
	}
}

func TestCoerceInt(t *testing.T) {
	if got := coerceInt(float64(12)); got != 12 {
		t.Fatalf("float64: %d", got)
	}
	if got := coerceInt("8"); got != 8 {
		t.Fatalf("string: %d", got)
	}
	if got := coerceInt("oito"); got != 0 {
		t.Fatalf("string inválida: %d", got)
	}
	if got := coerceInt(nil); got != 0 {
		t.Fatalf("nil: %d", got)
	}
}
