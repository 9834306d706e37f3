package report

import (
	"fmt"
	"html/template"
	"os"
	"strings"
	"time"

	"github.com/lorrc/kpi-dashboard/internal/core/domain"
	"github.com/lorrc/kpi-dashboard/internal/core/ports"
)

// autoRefreshInterval is the client-side reload delay baked into the report.
const autoRefreshInterval = time.Hour

// Renderer produces the self-contained HTML dashboard. The zero clock
// defaults to time.Now; tests inject a fixed one.
type Renderer struct {
	now func() time.Time
}

// Ensure Renderer implements the ports.ReportRenderer interface.
var _ ports.ReportRenderer = (*Renderer)(nil)

// NewRenderer creates a renderer using the wall clock.
func NewRenderer() *Renderer {
	return &Renderer{now: time.Now}
}

// NewRendererWithClock creates a renderer with a fixed clock for tests.
func NewRendererWithClock(now func() time.Time) *Renderer {
	return &Renderer{now: now}
}

// WriteReport renders the merged table and writes the document to path,
// overwriting any previous report for the same day.
func (r *Renderer) WriteReport(path string, merged domain.Table) error {
	content, err := r.Render(merged)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("write report %s: %w", path, err)
	}
	return nil
}

// Render returns the complete HTML document as a string.
func (r *Renderer) Render(merged domain.Table) (string, error) {
	data := buildReportData(merged, r.now())
	var b strings.Builder
	if err := reportTemplate.Execute(&b, data); err != nil {
		return "", fmt.Errorf("render report: %w", err)
	}
	return b.String(), nil
}

// reportData is the template view model.
type reportData struct {
	GeneratedAt   string
	RefreshMillis int64
	TotalDossiers int
	TotalPieces   int64
	TotalEntries  int64
	TotalSuspense int64
	Rows          []rowView
}

type rowView struct {
	Dossier          string
	ExportedPieces   int64
	ExportedEntries  int64
	PiecesToProcess  int64
	EntriesToProcess int64
	SuspenseAccounts int64
	MinDate          string
	MaxDate          string
	PiecesClass      domain.Severity
	SuspenseClass    domain.Severity
}

func buildReportData(merged domain.Table, now time.Time) reportData {
	totals := merged.Totals()
	data := reportData{
		GeneratedAt:   now.Format("02/01/2006 à 15:04"),
		RefreshMillis: autoRefreshInterval.Milliseconds(),
		TotalDossiers: len(merged.Rows),
		TotalPieces:   totals[domain.ColPiecesToProcess],
		TotalEntries:  totals[domain.ColEntriesToProcess],
		TotalSuspense: totals[domain.ColSuspenseAccounts],
	}

	data.Rows = make([]rowView, 0, len(merged.Rows))
	for _, row := range merged.Rows {
		pieces := row.Int(domain.ColPiecesToProcess)
		suspense := row.Int(domain.ColSuspenseAccounts)
		data.Rows = append(data.Rows, rowView{
			Dossier:          row.Text(domain.KeyColumn),
			ExportedPieces:   row.Int(domain.ColExportedPieces),
			ExportedEntries:  row.Int(domain.ColExportedEntries),
			PiecesToProcess:  pieces,
			EntriesToProcess: row.Int(domain.ColEntriesToProcess),
			SuspenseAccounts: suspense,
			MinDate:          row.Text(domain.ColMinDate),
			MaxDate:          row.Text(domain.ColMaxDate),
			PiecesClass:      domain.Classify(domain.ColPiecesToProcess, pieces),
			SuspenseClass:    domain.Classify(domain.ColSuspenseAccounts, suspense),
		})
	}
	return data
}

var reportTemplate = template.Must(template.New("dashboard").Parse(`<!DOCTYPE html>
<html lang="fr">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>Tableau de Bord KPI - Export EDI</title>
    <style>
        body {
            font-family: 'Segoe UI', Tahoma, Geneva, Verdana, sans-serif;
            margin: 0;
            padding: 20px;
            background-color: #f5f5f5;
        }
        .header {
            background: linear-gradient(135deg, #667eea 0%, #764ba2 100%);
            color: white;
            padding: 30px;
            border-radius: 10px;
            margin-bottom: 30px;
            text-align: center;
            box-shadow: 0 4px 6px rgba(0,0,0,0.1);
        }
        .header h1 {
            margin: 0;
            font-size: 2.5em;
        }
        .header p {
            margin: 10px 0 0 0;
            font-size: 1.2em;
            opacity: 0.9;
        }
        .summary-cards {
            display: grid;
            grid-template-columns: repeat(auto-fit, minmax(250px, 1fr));
            gap: 20px;
            margin-bottom: 30px;
        }
        .card {
            background: white;
            padding: 20px;
            border-radius: 10px;
            box-shadow: 0 2px 4px rgba(0,0,0,0.1);
            text-align: center;
        }
        .card h3 {
            margin: 0 0 10px 0;
            color: #333;
            font-size: 0.9em;
            text-transform: uppercase;
            letter-spacing: 1px;
        }
        .card .number {
            font-size: 2.5em;
            font-weight: bold;
            color: #667eea;
            margin: 0;
        }
        .table-container {
            background: white;
            border-radius: 10px;
            box-shadow: 0 2px 4px rgba(0,0,0,0.1);
            overflow: hidden;
        }
        table {
            width: 100%;
            border-collapse: collapse;
            font-size: 14px;
        }
        th {
            background: #667eea;
            color: white;
            padding: 15px 10px;
            text-align: left;
            font-weight: 600;
            text-transform: uppercase;
            letter-spacing: 0.5px;
            font-size: 12px;
        }
        td {
            padding: 12px 10px;
            border-bottom: 1px solid #eee;
        }
        tr:hover {
            background-color: #f8f9ff;
        }
        .number-cell {
            text-align: right;
            font-weight: 600;
        }
        .warning {
            color: #e74c3c;
            font-weight: bold;
        }
        .good {
            color: #27ae60;
            font-weight: bold;
        }
        .footer {
            text-align: center;
            margin-top: 30px;
            color: #666;
            font-size: 0.9em;
        }
    </style>
</head>
<body>
    <div class="header">
        <h1>📊 Tableau de Bord KPI</h1>
        <p>Export EDI - Suivi par Dossier</p>
        <p>Dernière mise à jour: {{.GeneratedAt}}</p>
    </div>

    <div class="summary-cards">
        <div class="card">
            <h3>Total Dossiers</h3>
            <div class="number">{{.TotalDossiers}}</div>
        </div>
        <div class="card">
            <h3>Pièces à Traiter</h3>
            <div class="number">{{.TotalPieces}}</div>
        </div>
        <div class="card">
            <h3>Écritures à Traiter</h3>
            <div class="number">{{.TotalEntries}}</div>
        </div>
        <div class="card">
            <h3>Comptes d'Attente</h3>
            <div class="number">{{.TotalSuspense}}</div>
        </div>
    </div>

    <div class="table-container">
        <table>
            <thead>
                <tr>
                    <th>Dossier</th>
                    <th>Pièces Exportées</th>
                    <th>Écritures Exportées</th>
                    <th>Pièces à Traiter</th>
                    <th>Écritures à Traiter</th>
                    <th>Comptes d'Attente</th>
                    <th>Date Min</th>
                    <th>Date Max</th>
                </tr>
            </thead>
            <tbody>
{{- range .Rows}}
                <tr>
                    <td><strong>{{.Dossier}}</strong></td>
                    <td class="number-cell">{{.ExportedPieces}}</td>
                    <td class="number-cell">{{.ExportedEntries}}</td>
                    <td class="number-cell {{.PiecesClass}}">{{.PiecesToProcess}}</td>
                    <td class="number-cell">{{.EntriesToProcess}}</td>
                    <td class="number-cell {{.SuspenseClass}}">{{.SuspenseAccounts}}</td>
                    <td>{{.MinDate}}</td>
                    <td>{{.MaxDate}}</td>
                </tr>
{{- end}}
            </tbody>
        </table>
    </div>

    <div class="footer">
        <p>🔄 Ce rapport se met à jour automatiquement chaque jour</p>
        <p>📈 Les valeurs en rouge nécessitent une attention particulière</p>
    </div>

    <script>
        // Auto-refresh every hour
        setTimeout(function(){
            location.reload();
        }, {{.RefreshMillis}});
    </script>
</body>
</html>
`))

// OutputFilename returns the dated report name for the given day, one file
// per day, overwritten when re-run.
func OutputFilename(day time.Time) string {
	return fmt.Sprintf("kpi_dashboard_%s.html", day.Format("20060102"))
}
