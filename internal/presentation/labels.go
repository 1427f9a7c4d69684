package presentation

import "rentdash/internal/models"

// Page texts, kept in Portuguese like the dataset they describe.
const (
	PageTitle     = "Dashboard de Imóveis para Aluguel"
	SummaryHeader = "Apanhado Geral das Informações"
	TableHeader   = "Tabela de Dados"
	SidebarHeader = "Filtros"
	CityPrompt    = "Selecione a Cidade"
	NoDataMessage = "Nenhum dado disponível para a cidade selecionada."
)

// Subtitles shown under the page title.
var Subtitles = []string{
	"Pós-Graduação em Análise de Dados e IA - UFMA",
	"Disciplina de Visualização de Dados",
}

// Axis and legend titles.
const (
	titleCity        = "Cidade"
	titleMeanRent    = "Preço Médio de Aluguel (R$)"
	titleRooms       = "Número de Quartos"
	titlePropCount   = "Quantidade de Imóveis"
	titleTotal       = "Total (R$)"
	titleArea        = "Área (m²)"
	titleRent        = "Preço de Aluguel (R$)"
	titleStatus      = "Status"
	titlePercent     = "Porcentagem (%)"
	titleMeanTax     = "Imposto Médio (R$)"
	titleFurniture   = "Tipo de Mobília"
	titleFurnitureID = "Mobília"
)

var animalLabels = map[string]string{
	models.AnimalAccept:    "Aceita Animais",
	models.AnimalNotAccept: "Não Aceita Animais",
}

var furnitureLabels = map[string]string{
	models.FurnitureYes: "Mobiliado",
	models.FurnitureNo:  "Não Mobiliado",
}

// translate maps a raw category to its display label, falling back to the raw value.
func translate(labels map[string]string, raw string) string {
	if l, ok := labels[raw]; ok {
		return l
	}
	return raw
}
