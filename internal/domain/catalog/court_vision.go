package catalog

import (
	"strconv"

	"github.com/gustavohenri316/Montink-Store/internal/domain/shared/valueobject"
)

// CourtVisionLowID identifies the sneaker sold by the storefront
const CourtVisionLowID = "nike-court-vision-low"

func images(label string, pics ...[2]string) []Image {
	out := make([]Image, 0, len(pics))
	for i, pic := range pics {
		out = append(out, Image{
			ID:  strconv.Itoa(i + 1),
			URL: "/images/" + pic[0],
			Alt: "Tênis Nike Court Vision Low - " + label + " " + pic[1],
		})
	}
	return out
}

// CourtVisionLow returns the sneaker with its four color variants
func CourtVisionLow() *Product {
	return &Product{
		ID:          CourtVisionLowID,
		Name:        "Tênis Nike Court Vision Low Next Nature Masculino",
		Price:       valueobject.MustBRL("299.90"),
		ListPrice:   valueobject.MustBRL("399.90"),
		Badge:       "Novo | 150+ vendidos",
		Rating:      5,
		ReviewCount: 128,
		Description: []string{
			"O Tênis Nike Court Vision Low Next Nature Masculino foi inspirado nos clássicos do basquete dos anos 80. " +
				"Com materiais sustentáveis, este tênis combina o estilo retrô com a preocupação ambiental da linha Next Nature da Nike.",
		},
		Features: []string{
			"Parte superior em couro sintético para maior durabilidade",
			"Solado em borracha que proporciona excelente tração",
			"Design clássico inspirado nos anos 80",
			"Entressola com amortecimento confortável",
			"Feito com pelo menos 20% de materiais reciclados (linha Next Nature)",
			"Perfil baixo para maior mobilidade",
			"Logo Swoosh nas laterais",
		},
		Variants: []Variant{
			{
				Color:     "#FFFFFF",
				ColorName: "Branco",
				Sizes:     []string{"38", "39", "40", "41", "42", "43"},
				Images:    images("branco",
					[2]string{"tenis-1.png", "vista frontal"},
					[2]string{"tenis-2.png", "vista lateral"},
					[2]string{"tenis-3.png", "vista traseira"},
					[2]string{"tenis-4.png", "vista superior"},
					[2]string{"tenis-6.png", "detalhe da sola"},
				),
			},
			{
				Color:     "#000000",
				ColorName: "Preto",
				Sizes:     []string{"38", "39", "40", "41", "42"},
				Images:    images("preto",
					[2]string{"tenis-preto-1.png", "vista frontal"},
					[2]string{"tenis-preto-2.png", "vista lateral"},
					[2]string{"tenis-preto-3.png", "vista traseira"},
				),
			},
			{
				Color:     "#f54500",
				ColorName: "Laranja Royal",
				Sizes:     []string{"39", "40", "41", "42"},
				Images:    images("laranja",
					[2]string{"tenis-laranja-1.png", "vista frontal"},
					[2]string{"tenis-laranja-2.png", "vista lateral"},
				),
			},
			{
				Color:     "#1f4618",
				ColorName: "Verde",
				Sizes:     []string{"38", "40", "41", "43"},
				Images:    images("verde", [2]string{"tenis-verde-1.png", "vista frontal"}),
			},
		},
	}
}
