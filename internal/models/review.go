package models

// ReviewInput es lo que llega del proveedor de metadata (o del cliente).
type ReviewInput struct {
	Author  string `json:"author"`
	Content string `json:"content" validate:"max=100000"`
}

// ReviewRecord es el resultado por reseña. Sentiment nil = desconocido
// (sin modelo, contenido vacío o error al clasificar).
type ReviewRecord struct {
	Author    string `json:"author"`
	Content   string `json:"content"`
	Sentiment *int   `json:"sentiment"`
}

// ReviewAnalysis agrega los conteos; solo cuentan las reseñas etiquetadas.
type ReviewAnalysis struct {
	Records  []ReviewRecord `json:"records"`
	Total    int            `json:"total"`
	Positive int            `json:"positive"`
	Negative int            `json:"negative"`
}
