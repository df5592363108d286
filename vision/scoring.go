package vision

// Pesos liga classes detectáveis a carreiras. Os pesos de cada label ficam em
// [0,1] e a intenção é que somem no máximo 1 por label (não é imposto).
var Pesos = map[string]map[string]float64{
	"python":     {"Data/ML": 0.6, "Back-end": 0.4},
	"java":       {"Back-end": 0.7, "Full-Stack": 0.3},
	"react":      {"Front-end": 0.8, "Full-Stack": 0.2},
	"arduino":    {"Embarcados": 0.9},
	"docker":     {"DevOps": 0.7, "Full-Stack": 0.3},
	"kubernetes": {"DevOps": 0.9},
}

// ScoreFromDetections converte uma lista de detecções em afinidade por
// carreira. Para cada label conhecido acumula peso*confiança; ao final os
// valores são normalizados pelo maior acumulado, de modo que a carreira líder
// fica com score 1.0 e as demais proporcionais em [0,1].
//
// Labels desconhecidos não contribuem nem geram erro. Se nenhuma detecção
// casar com a tabela o resultado é um mapa vazio. A acumulação é comutativa:
// reordenar a entrada não muda o resultado.
func ScoreFromDetections(detections []Detection) map[string]float64 {
	score := map[string]float64{}
	for _, d := range detections {
		pesos, ok := Pesos[d.Label]
		if !ok {
			continue
		}
		for carreira, peso := range pesos {
			score[carreira] += peso * d.Confidence
		}
	}
	if len(score) == 0 {
		return map[string]float64{}
	}

	max := 0.0
	for _, v := range score {
		if v > max {
			max = v
		}
	}
	if max > 0 {
		for k, v := range score {
			score[k] = v / max
		}
	}
	return score
}
