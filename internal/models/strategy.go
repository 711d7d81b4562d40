package models

// ExitStrategy describe una estrategia de salida predefinida.
// Es información puramente descriptiva adjunta a una posición:
// el sistema nunca ejecuta ventas automáticamente.
type ExitStrategy struct {
	ID          string   `json:"id"`
	Label       string   `json:"label"`
	Description string   `json:"description"`
	Timeline    []string `json:"timeline"` // Hitos ordenados de la estrategia
}
