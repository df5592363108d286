package planner

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"
)

// Preferencias é o perfil informado pelo usuário para a geração da trilha.
type Preferencias struct {
	Nome           string   `json:"nome" binding:"required"`
	Interesses     []string `json:"interesses"`
	Experiencia    string   `json:"experiencia"`
	PrefereAreas   []string `json:"prefere_areas"`
	HorasPorSemana int      `json:"horas_por_semana"`
}

// Passo é uma etapa já normalizada do plano de estudos.
type Passo struct {
	Ordem        int    `json:"ordem"`
	Titulo       string `json:"titulo"`
	Descricao    string `json:"descricao"`
	CargaHoraria int    `json:"carga_horaria"`
}

// Plano é o resultado da geração: carreira escolhida, justificativa e passos
// ordenados. Sempre completo e não-vazio, venha da IA ou do fallback.
type Plano struct {
	Carreira      string  `json:"carreira"`
	Justificativa string  `json:"justificativa"`
	Passos        []Passo `json:"passos"`
}

type contentGenerator interface {
	GenerateContent(ctx context.Context, system, user string) (string, error)
}

const defaultMaxLogLength = 200

// Planner monta planos de estudo. Delega ao Gemini quando há um generator
// configurado; qualquer falha (credencial ausente, resposta fora do formato,
// erro de transporte) resolve localmente para o plano fallback, com o motivo
// registrado no log. Nunca devolve erro ao chamador.
type Planner struct {
	generator contentGenerator
	logger    *zap.Logger
	maxLogLen int
}

// New cria um Planner. generator pode ser nil: é o modo degradado previsto,
// em que toda geração usa o fallback.
func New(generator contentGenerator, logger *zap.Logger) *Planner {
	return &Planner{
		generator: generator,
		logger:    logger,
		maxLogLen: defaultMaxLogLength,
	}
}

const promptSistema = "Você é uma IA especializada em educação e carreira em tecnologia. " +
	"Monte trilhas de estudo práticas e organizadas, pensando em alunos de graduação. " +
	"Retorne APENAS um JSON válido, sem texto extra, sem markdown."

// Gerar produz o plano para o perfil dado, escolhendo entre as carreiras
// conhecidas.
func (p *Planner) Gerar(ctx context.Context, prefs Preferencias, carreiras []string) *Plano {
	if p.generator == nil {
		return p.fallback(prefs, carreiras, "GEMINI_API_KEY não configurada")
	}

	prompt := buildPrompt(prefs, carreiras)

	p.logger.Debug("gemini gerar trilha request",
		zap.String("usuario", prefs.Nome),
		zap.Int("prompt_length", utf8.RuneCountInString(prompt)),
	)

	raw, err := p.generator.GenerateContent(ctx, promptSistema, prompt)
	if err != nil {
		return p.fallback(prefs, carreiras, fmt.Sprintf("erro na chamada da API Gemini: %v", err))
	}

	p.logger.Debug("gemini gerar trilha response",
		zap.String("usuario", prefs.Nome),
		zap.Int("response_length", utf8.RuneCountInString(raw)),
		zap.String("response_preview", truncateForLog(raw, p.maxLogLen)),
	)

	var data map[string]any
	if err := json.Unmarshal([]byte(extractJSON(raw)), &data); err != nil {
		return p.fallback(prefs, carreiras, "JSON inválido retornado pela IA Gemini")
	}

	return normalize(data, prefs, carreiras)
}

// fallback é o plano fixo de 3 passos usado sempre que a IA está indisponível
// ou não confiável. Garante que o chamador recebe um plano utilizável.
func (p *Planner) fallback(prefs Preferencias, carreiras []string, motivo string) *Plano {
	carreira := carreiraPadrao(prefs, carreiras)
	p.logger.Warn("usando plano fallback da IA", zap.String("motivo", motivo))

	return &Plano{
		Carreira:      carreira,
		Justificativa: fmt.Sprintf("Carreira escolhida com base nas áreas preferidas (fallback: %s).", motivo),
		Passos: []Passo{
			{
				Ordem:        1,
				Titulo:       "Fundamentos de Programação com Python",
				Descricao:    "Aprender lógica, variáveis, estruturas de controle e funções usando Python.",
				CargaHoraria: 20,
			},
			{
				Ordem:        2,
				Titulo:       "Git e Versionamento de Código",
				Descricao:    "Uso básico de Git, commits, branches e trabalho colaborativo com GitHub.",
				CargaHoraria: 10,
			},
			{
				Ordem:        3,
				Titulo:       fmt.Sprintf("Introdução à área de %s", carreira),
				Descricao:    fmt.Sprintf("Conceitos principais da área de %s, ferramentas e boas práticas.", carreira),
				CargaHoraria: 25,
			},
		},
	}
}

func buildPrompt(prefs Preferencias, carreiras []string) string {
	return fmt.Sprintf(`Perfil do usuário:
- Nome: %s
- Interesses: %s
- Experiência: %s
- Áreas preferidas: %s
- Horas disponíveis por semana: %d

Carreiras disponíveis: %s

Monte um plano no formato JSON exato:

{
  "carreira": "NOME_DA_CARREIRA_ESCOLHIDA (uma das disponíveis)",
  "justificativa": "texto explicando o porquê dessa carreira",
  "passos": [
    {
      "ordem": 1,
      "titulo": "Nome do primeiro passo",
      "descricao": "Descrição do que estudar/fazer",
      "carga_horaria": 10
    },
    {
      "ordem": 2,
      "titulo": "Nome do segundo passo",
      "descricao": "Descrição do que estudar/fazer",
      "carga_horaria": 12
    }
  ]
}

Lembre-se: responda SOMENTE com o JSON.`,
		prefs.Nome,
		strings.Join(prefs.Interesses, ", "),
		prefs.Experiencia,
		strings.Join(prefs.PrefereAreas, ", "),
		prefs.HorasPorSemana,
		strings.Join(carreiras, ", "),
	)
}

// normalize aplica os defaults campo a campo sobre o JSON devolvido pela IA:
// ordem vira a posição 1-based quando ausente ou não-positiva, título ganha um
// placeholder, descrição vazia é aceita e carga horária ausente/zerada vira 10.
func normalize(data map[string]any, prefs Preferencias, carreiras []string) *Plano {
	carreira := coerceString(data["carreira"])
	if carreira == "" {
		carreira = carreiraPadrao(prefs, carreiras)
	}

	justificativa := coerceString(data["justificativa"])
	if justificativa == "" {
		justificativa = "Carreira sugerida pela IA com base no perfil informado."
	}

	rawPassos, _ := data["passos"].([]any)
	passos := make([]Passo, 0, len(rawPassos))
	for i, raw := range rawPassos {
		item, _ := raw.(map[string]any)
		pos := i + 1

		ordem := coerceInt(item["ordem"])
		if ordem <= 0 {
			ordem = pos
		}
		titulo := coerceString(item["titulo"])
		if titulo == "" {
			titulo = fmt.Sprintf("Passo %d", pos)
		}
		carga := coerceInt(item["carga_horaria"])
		if carga <= 0 {
			carga = 10
		}

		passos = append(passos, Passo{
			Ordem:        ordem,
			Titulo:       titulo,
			Descricao:    coerceString(item["descricao"]),
			CargaHoraria: carga,
		})
	}

	return &Plano{
		Carreira:      carreira,
		Justificativa: justificativa,
		Passos:        passos,
	}
}

func carreiraPadrao(prefs Preferencias, carreiras []string) string {
	if len(prefs.PrefereAreas) > 0 {
		return prefs.PrefereAreas[0]
	}
	if len(carreiras) > 0 {
		return carreiras[0]
	}
	return ""
}

// extractJSON limpa cercas de markdown que alguns modelos insistem em mandar
// mesmo com instrução de JSON puro.
func extractJSON(raw string) string {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "```") {
		raw = strings.TrimPrefix(raw, "```json")
		raw = strings.TrimPrefix(raw, "```")
		raw = strings.TrimSpace(raw)
		if idx := strings.LastIndex(raw, "```"); idx != -1 {
			raw = raw[:idx]
		}
	}
	raw = strings.Trim(raw, "`")
	return strings.TrimSpace(raw)
}

func coerceString(v any) string {
	switch val := v.(type) {
	case string:
		return strings.TrimSpace(val)
	default:
		return ""
	}
}

func coerceInt(v any) int {
	switch val := v.(type) {
	case float64:
		return int(val)
	case int:
		return val
	case json.Number:
		i, err := val.Int64()
		if err != nil {
			return 0
		}
		return int(i)
	case string:
		trimmed := strings.TrimSpace(val)
		if trimmed == "" {
			return 0
		}
		i, err := strconv.Atoi(trimmed)
		if err != nil {
			return 0
		}
		return i
	default:
		return 0
	}
}

func truncateForLog(s string, limit int) string {
	s = strings.TrimSpace(s)
	if limit <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + "..."
}
