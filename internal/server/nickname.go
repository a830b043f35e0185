package server

import (
	"math/rand"
)

// 昵称词库
var (
	adjectives = []string{
		"Valiente", "Astuto", "Alegre", "Misterioso", "Elegante",
		"Tranquilo", "Travieso", "Veloz", "Sereno", "Chispeante",
		"Ingenioso", "Galante", "Tierno", "Audaz", "Risueño",
		"Brillante", "Encantador", "Orgulloso", "Soñador", "Distante",
	}

	nouns = []string{
		"Cóndor", "Puma", "Zorro", "Lobo", "Huemul",
		"Pingüino", "Delfín", "Chinchilla", "Guanaco", "Flamenco",
		"Pudú", "Alpaca", "Tucán", "Quirquincho", "Vizcacha",
		"Carpincho", "Ñandú", "Coipo", "Monito", "Chungungo",
	}
)

// GenerateNickname 生成随机昵称
func GenerateNickname() string {
	adj := adjectives[rand.Intn(len(adjectives))]
	noun := nouns[rand.Intn(len(nouns))]
	return noun + " " + adj
}
