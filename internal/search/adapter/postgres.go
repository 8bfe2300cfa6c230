package adapter

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/festafacil/app-busca-fornecedores/internal/models"
	"github.com/lib/pq"
)

const (
	ProvidersTable = "providers"

	pqUndefinedColumn = "42703"
)

const providerColumns = `"id", "name", "category", "priceFrom", "rating", "ratingCount", ` +
	`COALESCE("mainImage", ''), "radiusKm", "hasCNPJ", "includesMonitor", COALESCE("cepAreas", '{}')`

// PostgresSource lê fornecedores da tabela providers (schema herdado do Supabase)
type PostgresSource struct {
	db *sql.DB
}

// OpenPostgres abre o pool de conexões com o driver lib/pq
func OpenPostgres(dsn string) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("falha ao abrir postgres: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)
	db.SetConnMaxIdleTime(5 * time.Minute)

	return db, nil
}

// NewPostgresSource cria a fonte sobre um *sql.DB já aberto
func NewPostgresSource(db *sql.DB) *PostgresSource {
	return &PostgresSource{db: db}
}

func (s *PostgresSource) Name() string { return "postgres" }

// Ping testa a conexão
func (s *PostgresSource) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Query executa a consulta filtrada e paginada. O total vem de COUNT(*) OVER().
func (s *PostgresSource) Query(ctx context.Context, q RemoteQuery) (*RemotePage, error) {
	where, args := buildWhere(q)

	query := fmt.Sprintf(`SELECT %s, COUNT(*) OVER() FROM %s WHERE %s ORDER BY %s LIMIT $%d OFFSET $%d`,
		providerColumns, ProvidersTable, where, orderBy(q.Sort), len(args)+1, len(args)+2)
	args = append(args, q.Limit, q.Offset)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, s.mapError(err, q)
	}
	defer rows.Close()

	page := &RemotePage{Providers: make([]models.Provider, 0, q.Limit)}
	var total int
	for rows.Next() {
		p, err := scanProvider(rows, &total)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrRemoteQuery, err)
		}
		page.Providers = append(page.Providers, p)
	}
	if err := rows.Err(); err != nil {
		return nil, s.mapError(err, q)
	}

	if len(page.Providers) > 0 || q.Offset == 0 {
		page.Total = &total
		return page, nil
	}

	// Página além do fim: COUNT(*) OVER() não tem linha onde aparecer
	countArgs := args[:len(args)-2]
	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM %s WHERE %s`, ProvidersTable, where)
	if err := s.db.QueryRowContext(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, s.mapError(err, q)
	}
	page.Total = &total
	return page, nil
}

// All retorna todos os fornecedores ordenados por id
func (s *PostgresSource) All(ctx context.Context) ([]models.Provider, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s ORDER BY "id"`, providerColumns, ProvidersTable)
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRemoteQuery, err)
	}
	defer rows.Close()

	out := make([]models.Provider, 0)
	for rows.Next() {
		p, err := scanProvider(rows, nil)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrRemoteQuery, err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRemoteQuery, err)
	}
	return out, nil
}

// ByID busca um fornecedor pelo id
func (s *PostgresSource) ByID(ctx context.Context, id string) (*models.Provider, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE "id" = $1`, providerColumns, ProvidersTable)
	p, err := scanProvider(s.db.QueryRowContext(ctx, query, id), nil)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.ErrProviderNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRemoteQuery, err)
	}
	return &p, nil
}

func (s *PostgresSource) mapError(err error, q RemoteQuery) error {
	var pqErr *pq.Error
	if q.CEPPrefix != "" && errors.As(err, &pqErr) && pqErr.Code == pqUndefinedColumn {
		return ErrCEPFilterUnsupported
	}
	return fmt.Errorf("%w: %v", ErrRemoteQuery, err)
}

func buildWhere(q RemoteQuery) (string, []interface{}) {
	args := []interface{}{q.PriceMin, q.PriceMax, q.MinRating}
	conds := []string{`"priceFrom" BETWEEN $1 AND $2`, `"rating" >= $3`}

	if q.HasCNPJ {
		conds = append(conds, `"hasCNPJ" = true`)
	}
	if q.IncludesMonitor {
		conds = append(conds, `"includesMonitor" = true`)
	}
	if q.Term != "" {
		args = append(args, "%"+escapeLike(q.Term)+"%")
		n := len(args)
		conds = append(conds, fmt.Sprintf(`("name" ILIKE $%d OR "category" ILIKE $%d)`, n, n))
	}
	if q.CEPPrefix != "" {
		args = append(args, q.CEPPrefix)
		conds = append(conds, fmt.Sprintf(`"cepPrefixes5" @> ARRAY[$%d]::text[]`, len(args)))
	}
	return strings.Join(conds, " AND "), args
}

// Empates terminam em "id" para a paginação ser determinística
func orderBy(mode models.SortMode) string {
	switch mode {
	case models.SortBestRated:
		return `"rating" DESC, "ratingCount" DESC, "id" ASC`
	case models.SortPriceAsc:
		return `"priceFrom" ASC, "id" ASC`
	case models.SortPriceDesc:
		return `"priceFrom" DESC, "id" ASC`
	default:
		return `"rating" DESC, "ratingCount" DESC, "priceFrom" ASC, "id" ASC`
	}
}

func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanProvider(row scanner, total *int) (models.Provider, error) {
	var (
		p        models.Provider
		category string
		areas    pq.StringArray
	)
	dest := []interface{}{
		&p.ID, &p.Name, &category, &p.PriceFrom, &p.Rating, &p.RatingCount,
		&p.MainImage, &p.RadiusKm, &p.HasCNPJ, &p.IncludesMonitor, &areas,
	}
	if total != nil {
		dest = append(dest, total)
	}
	if err := row.Scan(dest...); err != nil {
		return models.Provider{}, err
	}
	p.Category = models.Category(category)
	p.CEPAreas = []string(areas)
	if p.CEPAreas == nil {
		p.CEPAreas = []string{}
	}
	return p, nil
}
