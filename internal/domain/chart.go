package domain

type ChartOrientation string

const (
	ChartVertical   ChartOrientation = "vertical"
	ChartHorizontal ChartOrientation = "horizontal"
)

// ChartItem é uma barra do gráfico de pré-visualização
type ChartItem struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
	Color string  `json:"color,omitempty"`
}

// ChartData é a forma genérica consumida pelos renderizadores de gráfico.
// Items vazio significa "sem dados suficientes", nunca um erro.
type ChartData struct {
	Title       string           `json:"title"`
	Items       []ChartItem      `json:"items"`
	Orientation ChartOrientation `json:"orientation"`
	Hint        string           `json:"hint,omitempty"`
}
