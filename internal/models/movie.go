package models

// Movie es una fila del catálogo. ID es el id externo (TMDB) y Title la
// clave de búsqueda (no necesariamente única).
type Movie struct {
	ID    int    `json:"id" bson:"id"`
	Title string `json:"title" bson:"title"`
}

// MovieDoc es el documento de la colección movies cuando el catálogo
// viene de Mongo. IIdx es la fila/columna en la matriz de similitud.
type MovieDoc struct {
	MovieID int      `json:"movieId" bson:"movieId"`
	IIdx    *int     `json:"iIdx,omitempty" bson:"iIdx,omitempty"`
	Title   string   `json:"title" bson:"title"`
	Year    *int     `json:"year,omitempty" bson:"year,omitempty"`
	Genres  []string `json:"genres,omitempty" bson:"genres,omitempty"`
}

// ToMovie descarta los campos que el motor no usa.
func (d MovieDoc) ToMovie() Movie {
	return Movie{ID: d.MovieID, Title: d.Title}
}
