// seed-demo-data creates a demo project whose drawing set exhibits every
// conflict class the engine detects, plus an empty companion project, for
// manual CLI runs against a local database.
//
// Usage: go run ./scripts/seed-demo-data [-wipe] [-project-number=DEMO-100]
//
// Database connection: Uses standard PG* environment variables
//
// Flags:
//
//	-wipe            Delete the demo projects before seeding (default: false)
//	-project-number  Project number for the demo project (default: DEMO-100)
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type sheetSeed struct {
	key        string // lookup key for facts; differs from drawing for superseded revisions
	drawing    string
	discipline string
	current    bool
}

type lineSeed struct {
	sheet      string
	lineNumber string
	size       string
	material   string
}

type equipmentSeed struct {
	sheet         string
	tag           string
	equipmentType string
	description   string
}

type instrumentSeed struct {
	sheet          string
	tag            string
	instrumentType string
	loopNumber     string
}

var demoSheets = []sheetSeed{
	{key: "P-101", drawing: "P-101", discipline: "Piping", current: true},
	{key: "P-102", drawing: "P-102", discipline: "Piping", current: true},
	{key: "M-201", drawing: "M-201", discipline: "Mechanical", current: true},
	{key: "E-301", drawing: "E-301", discipline: "Electrical", current: true},
	{key: "I-401", drawing: "I-401", discipline: "Instrumentation", current: true},
	// Superseded revision of M-201; its facts must never surface.
	{key: "M-201-superseded", drawing: "M-201", discipline: "Mechanical", current: false},
}

var demoLines = []lineSeed{
	// Galvanic pair: carbon steel on piping, stainless on mechanical.
	{sheet: "P-101", lineNumber: `4"-PW-100`, size: `4"`, material: "CS"},
	{sheet: "M-201", lineNumber: `4"-PW-100`, size: `4"`, material: "SS"},

	// Far-apart sizes on the same run.
	{sheet: "P-101", lineNumber: `2"-CW-200`, size: `2"`, material: "CS"},
	{sheet: "M-201", lineNumber: `2"-CW-200`, size: `8"`, material: "CS"},

	// Plain material disagreement, neither side a corrosion marker.
	{sheet: "P-102", lineNumber: `3"-HW-300`, size: `3"`, material: "PVC"},
	{sheet: "M-201", lineNumber: `3"-HW-300`, size: `3"`, material: "HDPE"},

	// Two nominal steps apart; likely an intentional reducer.
	{sheet: "P-102", lineNumber: `6"-SW-400`, size: `6"`, material: "CS"},
	{sheet: "M-201", lineNumber: `6"-SW-400`, size: `4"`, material: "CS"},

	// Metric callout the normalizer cannot place on the inch ladder.
	{sheet: "P-102", lineNumber: `1"-IA-500`, size: `1"`, material: "SS"},
	{sheet: "I-401", lineNumber: `1"-IA-500`, size: "DN25", material: "SS"},

	// Agreeing pair; no conflict.
	{sheet: "P-101", lineNumber: `5"-PW-600`, size: `5"`, material: "CS"},
	{sheet: "M-201", lineNumber: `5"-PW-600`, size: `5"`, material: "CS"},

	// Lives only on the superseded revision.
	{sheet: "M-201-superseded", lineNumber: `4"-PW-100`, size: `4"`, material: "CU"},
}

var demoEquipment = []equipmentSeed{
	// Type disagreement.
	{sheet: "P-101", tag: "P-1001", equipmentType: "Pump", description: "Cooling water pump"},
	{sheet: "M-201", tag: "P-1001", equipmentType: "Compressor", description: "Cooling water pump"},

	// Types agree, descriptions drift.
	{sheet: "P-102", tag: "T-2001", equipmentType: "Tank", description: "Feed water tank"},
	{sheet: "M-201", tag: "T-2001", equipmentType: "Tank", description: "Feedwater tank"},

	// Single occurrence; nothing to compare.
	{sheet: "E-301", tag: "V-3001", equipmentType: "Vessel", description: ""},
}

var demoInstruments = []instrumentSeed{
	{sheet: "I-401", tag: "FT-100", instrumentType: "Flow Transmitter", loopNumber: "100"},
	{sheet: "I-401", tag: "PT-101", instrumentType: "Pressure Transmitter", loopNumber: "101"},
}

func main() {
	wipe := flag.Bool("wipe", false, "Delete the demo projects before seeding")
	projectNumber := flag.String("project-number", "DEMO-100", "Project number for the demo project")
	flag.Parse()

	ctx := context.Background()

	conn, err := pgx.Connect(ctx, buildConnString())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to connect to database: %v\n", err)
		os.Exit(1)
	}
	defer conn.Close(ctx)

	if err := run(ctx, conn, *projectNumber, *wipe); err != nil {
		fmt.Fprintf(os.Stderr, "Seeding failed: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, conn *pgx.Conn, projectNumber string, wipe bool) error {
	emptyNumber := projectNumber + "-EMPTY"

	if wipe {
		result, err := conn.Exec(ctx,
			"DELETE FROM projects WHERE project_number = ANY($1)",
			[]string{projectNumber, emptyNumber})
		if err != nil {
			return fmt.Errorf("wipe failed: %w", err)
		}
		fmt.Printf("Wiped %d existing demo project(s)\n", result.RowsAffected())
	}

	var exists bool
	err := conn.QueryRow(ctx,
		"SELECT EXISTS (SELECT 1 FROM projects WHERE project_number = $1)",
		projectNumber).Scan(&exists)
	if err != nil {
		return fmt.Errorf("existence check failed: %w", err)
	}
	if exists {
		return fmt.Errorf("project %s already exists; run with -wipe to recreate", projectNumber)
	}

	projectID, err := insertProject(ctx, conn, projectNumber, "Riverside Plant Expansion")
	if err != nil {
		return err
	}
	if _, err := insertProject(ctx, conn, emptyNumber, "Riverside Plant Expansion (empty drawing set)"); err != nil {
		return err
	}

	sheetIDs := make(map[string]uuid.UUID, len(demoSheets))
	for _, sheet := range demoSheets {
		id, err := insertSheet(ctx, conn, projectID, sheet)
		if err != nil {
			return err
		}
		sheetIDs[sheet.key] = id
	}

	for _, line := range demoLines {
		if err := insertLine(ctx, conn, sheetIDs[line.sheet], line); err != nil {
			return err
		}
	}
	for _, equipment := range demoEquipment {
		if err := insertEquipment(ctx, conn, sheetIDs[equipment.sheet], equipment); err != nil {
			return err
		}
	}
	for _, instrument := range demoInstruments {
		if err := insertInstrument(ctx, conn, sheetIDs[instrument.sheet], instrument); err != nil {
			return err
		}
	}

	fmt.Printf("Seeded project %s: %d sheets (1 superseded), %d lines, %d equipment, %d instruments\n",
		projectNumber, len(demoSheets), len(demoLines), len(demoEquipment), len(demoInstruments))
	fmt.Printf("Seeded project %s: empty drawing set\n", emptyNumber)
	fmt.Println()
	fmt.Println("Expected conflicts: 2 critical, 1 high, 3 medium, 1 low")
	fmt.Println()
	fmt.Println("Try:")
	fmt.Printf("  go run . crosscheck %s\n", projectNumber)
	fmt.Printf("  go run . stats %s\n", projectNumber)
	fmt.Printf("  go run . crosscheck %s\n", emptyNumber)

	return nil
}

func insertProject(ctx context.Context, conn *pgx.Conn, projectNumber, name string) (uuid.UUID, error) {
	var id uuid.UUID
	err := conn.QueryRow(ctx,
		"INSERT INTO projects (project_number, name) VALUES ($1, $2) RETURNING id",
		projectNumber, name).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("insert project %s: %w", projectNumber, err)
	}
	fmt.Printf("Created project %s (%s)\n", projectNumber, id)
	return id, nil
}

func insertSheet(ctx context.Context, conn *pgx.Conn, projectID uuid.UUID, sheet sheetSeed) (uuid.UUID, error) {
	var id uuid.UUID
	err := conn.QueryRow(ctx,
		`INSERT INTO sheets (project_id, drawing_number, discipline, is_current)
		 VALUES ($1, $2, $3, $4) RETURNING id`,
		projectID, sheet.drawing, sheet.discipline, sheet.current).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("insert sheet %s: %w", sheet.drawing, err)
	}
	return id, nil
}

func insertLine(ctx context.Context, conn *pgx.Conn, sheetID uuid.UUID, line lineSeed) error {
	_, err := conn.Exec(ctx,
		`INSERT INTO lines (sheet_id, line_number, size, material)
		 VALUES ($1, $2, $3, $4)`,
		sheetID, line.lineNumber, line.size, line.material)
	if err != nil {
		return fmt.Errorf("insert line %s: %w", line.lineNumber, err)
	}
	return nil
}

func insertEquipment(ctx context.Context, conn *pgx.Conn, sheetID uuid.UUID, equipment equipmentSeed) error {
	_, err := conn.Exec(ctx,
		`INSERT INTO equipment (sheet_id, tag, equipment_type, description)
		 VALUES ($1, $2, $3, $4)`,
		sheetID, equipment.tag, equipment.equipmentType, nullable(equipment.description))
	if err != nil {
		return fmt.Errorf("insert equipment %s: %w", equipment.tag, err)
	}
	return nil
}

func insertInstrument(ctx context.Context, conn *pgx.Conn, sheetID uuid.UUID, instrument instrumentSeed) error {
	_, err := conn.Exec(ctx,
		`INSERT INTO instruments (sheet_id, tag, instrument_type, loop_number)
		 VALUES ($1, $2, $3, $4)`,
		sheetID, instrument.tag, instrument.instrumentType, instrument.loopNumber)
	if err != nil {
		return fmt.Errorf("insert instrument %s: %w", instrument.tag, err)
	}
	return nil
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func buildConnString() string {
	host := getEnvOrDefault("PGHOST", "localhost")
	port := getEnvOrDefault("PGPORT", "5432")
	user := getEnvOrDefault("PGUSER", "planroom")
	password := os.Getenv("PGPASSWORD")
	dbname := getEnvOrDefault("PGDATABASE", "planroom")

	connStr := fmt.Sprintf("host=%s port=%s user=%s dbname=%s sslmode=disable",
		host, port, user, dbname)
	if password != "" {
		connStr += fmt.Sprintf(" password=%s", password)
	}
	return connStr
}

func getEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
