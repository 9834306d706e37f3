package postgres

// QuerySpec is one named entry of the KPI catalog. Every query is a read-only
// aggregate over the EDI export schema, grouped by dossier.
type QuerySpec struct {
	Name string
	SQL  string
}

// Catalog returns the six KPI queries in execution order. All of them target
// the same two tables: accounting entries and their export linkage. There is
// no cross-query transaction; a concurrent export between two queries may
// cause benign skew between counts.
func Catalog() []QuerySpec {
	return []QuerySpec{
		{
			Name: "pieces_exportees",
			SQL: `
        SELECT eec.dossier, COUNT(DISTINCT piece) as nb_pieces_exportees
        FROM ediflux_cerfrancecantal.edi_ecriture_comptable eec
        INNER JOIN ediflux_cerfrancecantal.edi_ecriture_export eee ON eee.ecriture_fk = eec.id
        GROUP BY eec.dossier
        ORDER BY eec.dossier;
    `,
		},
		{
			Name: "ecritures_exportees",
			SQL: `
        SELECT eec.dossier, COUNT(DISTINCT eec.id) as nb_ecritures_exportees
        FROM ediflux_cerfrancecantal.edi_ecriture_comptable eec
        INNER JOIN ediflux_cerfrancecantal.edi_ecriture_export eee ON eee.ecriture_fk = eec.id
        GROUP BY eec.dossier
        ORDER BY eec.dossier;
    `,
		},
		{
			Name: "pieces_non_exportees",
			SQL: `
        SELECT eec.dossier, COUNT(DISTINCT piece) as nb_pieces_a_traiter
        FROM ediflux_cerfrancecantal.edi_ecriture_comptable eec
        WHERE eec.id NOT IN (SELECT ecriture_fk FROM ediflux_cerfrancecantal.edi_ecriture_export eee)
        GROUP BY eec.dossier
        ORDER BY nb_pieces_a_traiter DESC;
    `,
		},
		{
			Name: "ecritures_non_exportees",
			SQL: `
        SELECT eec.dossier, COUNT(DISTINCT eec.id) as nb_ecritures_a_traiter
        FROM ediflux_cerfrancecantal.edi_ecriture_comptable eec
        WHERE eec.id NOT IN (SELECT ecriture_fk FROM ediflux_cerfrancecantal.edi_ecriture_export eee)
        GROUP BY eec.dossier
        ORDER BY nb_ecritures_a_traiter DESC;
    `,
		},
		{
			Name: "comptes_attente",
			SQL: `
        SELECT eec.dossier, COUNT(DISTINCT eec.id) as nb_comptes_attente
        FROM ediflux_cerfrancecantal.edi_ecriture_comptable eec
        WHERE eec.id NOT IN (SELECT ecriture_fk FROM ediflux_cerfrancecantal.edi_ecriture_export eee)
        AND eec.code_comptable LIKE '47%'
        GROUP BY eec.dossier
        ORDER BY nb_comptes_attente DESC;
    `,
		},
		{
			Name: "dates_extremes",
			SQL: `
        SELECT
            eec.dossier,
            TO_CHAR(MIN(eec.date), 'DD-MM-YYYY') as date_min_a_traiter,
            TO_CHAR(MAX(eec.date), 'DD-MM-YYYY') as date_max_a_traiter
        FROM ediflux_cerfrancecantal.edi_ecriture_comptable eec
        WHERE eec.id NOT IN (SELECT ecriture_fk FROM ediflux_cerfrancecantal.edi_ecriture_export eee)
        AND eec.code_comptable LIKE '47%'
        GROUP BY eec.dossier
        ORDER BY eec.dossier;
    `,
		},
	}
}
