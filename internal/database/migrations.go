package database

import (
	"database/sql"
	"log"
)

// RunMigrations ejecuta las migraciones necesarias para actualizar el esquema
// de la base de datos
func RunMigrations(db *sql.DB) error {
	log.Println("Ejecutando migraciones de la base de datos...")

	// Migración para añadir el campo holders a la tabla tokens
	addHoldersColumnSQL := `
	ALTER TABLE tokens ADD COLUMN holders INTEGER DEFAULT 0;
	`

	_, err := db.Exec(addHoldersColumnSQL)
	if err != nil {
		// No retornamos error porque SQLite da error si la columna ya existe
		// y queremos que la migración continúe
		log.Printf("Migración de columna holders omitida: %v", err)
	} else {
		log.Println("Columna holders añadida correctamente")
	}

	return nil
}
