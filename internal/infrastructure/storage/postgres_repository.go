package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"ESGRiskScanner/internal/domain"
	"ESGRiskScanner/internal/esg"
	"ESGRiskScanner/internal/ports"
)

// PostgresRepository persists company analyses into Postgres.
type PostgresRepository struct {
	db      *sql.DB
	builder sq.StatementBuilderType
}

var _ ports.AnalysisRepository = (*PostgresRepository)(nil)

// NewPostgresRepository wires a sql.DB implementation.
func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{
		db:      db,
		builder: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

// SaveAnalysis stores the company, its articles with their events and the
// risk score in a single transaction.
func (r *PostgresRepository) SaveAnalysis(ctx context.Context, analysis domain.CompanyAnalysis) (err error) {
	if r.db == nil {
		return nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
				err = fmt.Errorf("%w (rollback: %v)", err, rbErr)
			}
		}
	}()

	companyID, err := r.upsertCompany(ctx, tx, analysis.Company)
	if err != nil {
		return err
	}

	for _, item := range analysis.Articles {
		if err = r.insertArticle(ctx, tx, companyID, item); err != nil {
			return err
		}
	}

	query, args, err := r.builder.
		Insert("risk_scores").
		Columns("company_id", "overall_score", "environmental_score", "social_score", "governance_score", "calculated_at").
		Values(companyID, analysis.Risk.Overall, analysis.Risk.Environmental, analysis.Risk.Social, analysis.Risk.Governance, analysis.AnalyzedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("build risk score insert: %w", err)
	}
	if _, err = tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert risk score: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit analysis: %w", err)
	}
	return nil
}

func (r *PostgresRepository) upsertCompany(ctx context.Context, tx *sql.Tx, name string) (int64, error) {
	query, args, err := r.builder.
		Insert("companies").
		Columns("name").
		Values(name).
		Suffix("ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name RETURNING id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build company upsert: %w", err)
	}

	var id int64
	if err := tx.QueryRowContext(ctx, query, args...).Scan(&id); err != nil {
		return 0, fmt.Errorf("upsert company %s: %w", name, err)
	}
	return id, nil
}

func (r *PostgresRepository) insertArticle(ctx context.Context, tx *sql.Tx, companyID int64, item domain.ArticleAnalysis) error {
	a := item.Article
	query, args, err := r.builder.
		Insert("articles").
		Columns("company_id", "external_id", "title", "content", "url", "source", "published_at", "sentiment_score").
		Values(companyID, a.ID, a.Title, a.Content, a.URL, a.Source, a.PublishedAt, item.Sentiment).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return fmt.Errorf("build article insert: %w", err)
	}

	var articleID int64
	if err := tx.QueryRowContext(ctx, query, args...).Scan(&articleID); err != nil {
		return fmt.Errorf("insert article %s: %w", a.ID, err)
	}

	if len(item.Events) == 0 {
		return nil
	}

	insert := r.builder.
		Insert("esg_events").
		Columns("article_id", "event_type", "description", "severity")
	for _, ev := range item.Events {
		insert = insert.Values(articleID, ev.Type, ev.Description, ev.Severity)
	}

	query, args, err = insert.ToSql()
	if err != nil {
		return fmt.Errorf("build event insert: %w", err)
	}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert events for article %s: %w", a.ID, err)
	}
	return nil
}

// LatestScores returns each company's newest risk score with its article count.
// Company names are matched case-insensitively.
func (r *PostgresRepository) LatestScores(ctx context.Context, companies []string) ([]domain.CompanySummary, error) {
	if r.db == nil {
		return nil, nil
	}

	query := r.builder.
		Select(
			"c.id", "c.name",
			"rs.overall_score", "rs.environmental_score", "rs.social_score", "rs.governance_score",
			"rs.calculated_at",
			"(SELECT COUNT(*) FROM articles a WHERE a.company_id = c.id) AS total_articles",
		).
		From("companies c").
		JoinClause(`JOIN LATERAL (
			SELECT overall_score, environmental_score, social_score, governance_score, calculated_at
			FROM risk_scores
			WHERE company_id = c.id
			ORDER BY calculated_at DESC
			LIMIT 1
		) rs ON TRUE`).
		OrderBy("c.name")

	if len(companies) > 0 {
		names := make([]string, len(companies))
		for i, name := range companies {
			names[i] = strings.ToLower(name)
		}
		query = query.Where("lower(c.name) = ANY(?)", pq.Array(names))
	}

	sqlText, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build latest scores query: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, sqlText, args...)
	if err != nil {
		return nil, fmt.Errorf("query latest scores: %w", err)
	}

	var result []domain.CompanySummary
	for rows.Next() {
		var s domain.CompanySummary
		if err := rows.Scan(
			&s.ID, &s.Name,
			&s.Risk.Overall, &s.Risk.Environmental, &s.Risk.Social, &s.Risk.Governance,
			&s.LastAnalyzed, &s.TotalArticles,
		); err != nil {
			_ = rows.Close()
			return nil, fmt.Errorf("scan latest score: %w", err)
		}
		result = append(result, s)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		_ = rows.Close()
		return nil, fmt.Errorf("rows iteration: %w", rowsErr)
	}

	if closeErr := rows.Close(); closeErr != nil {
		return nil, fmt.Errorf("close rows: %w", closeErr)
	}

	return result, nil
}

// CompanyDetails loads the company's latest risk score together with every
// stored article and its events, newest article first.
func (r *PostgresRepository) CompanyDetails(ctx context.Context, company string) (domain.CompanyAnalysis, error) {
	if r.db == nil {
		return domain.CompanyAnalysis{}, fmt.Errorf("%w: %s", domain.ErrCompanyNotFound, company)
	}

	query, args, err := r.builder.
		Select("c.id", "c.name",
			"rs.overall_score", "rs.environmental_score", "rs.social_score", "rs.governance_score",
			"rs.calculated_at").
		From("companies c").
		Join("risk_scores rs ON rs.company_id = c.id").
		Where("lower(c.name) = lower(?)", company).
		OrderBy("rs.calculated_at DESC").
		Limit(1).
		ToSql()
	if err != nil {
		return domain.CompanyAnalysis{}, fmt.Errorf("build company score query: %w", err)
	}

	var (
		companyID int64
		analysis  domain.CompanyAnalysis
	)
	err = r.db.QueryRowContext(ctx, query, args...).Scan(
		&companyID, &analysis.Company,
		&analysis.Risk.Overall, &analysis.Risk.Environmental, &analysis.Risk.Social, &analysis.Risk.Governance,
		&analysis.AnalyzedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.CompanyAnalysis{}, fmt.Errorf("%w: %s", domain.ErrCompanyNotFound, company)
	}
	if err != nil {
		return domain.CompanyAnalysis{}, fmt.Errorf("query company score %s: %w", company, err)
	}

	articles, err := r.companyArticles(ctx, companyID)
	if err != nil {
		return domain.CompanyAnalysis{}, err
	}
	analysis.Articles = articles
	analysis.TotalArticles = len(articles)
	for _, item := range articles {
		analysis.Events = append(analysis.Events, item.Events...)
	}

	return analysis, nil
}

func (r *PostgresRepository) companyArticles(ctx context.Context, companyID int64) ([]domain.ArticleAnalysis, error) {
	query, args, err := r.builder.
		Select("a.id", "a.external_id", "a.title", "a.content", "a.url", "a.source", "a.published_at", "a.sentiment_score",
			"e.event_type", "e.description", "e.severity").
		From("articles a").
		LeftJoin("esg_events e ON e.article_id = a.id").
		Where(sq.Eq{"a.company_id": companyID}).
		OrderBy("a.published_at DESC", "a.id", "e.id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build company articles query: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query company articles: %w", err)
	}
	defer rows.Close()

	var (
		result []domain.ArticleAnalysis
		lastID int64
	)
	for rows.Next() {
		var (
			rowID       int64
			item        domain.ArticleAnalysis
			eventType   sql.NullString
			description sql.NullString
			severity    sql.NullFloat64
		)
		if err := rows.Scan(
			&rowID, &item.Article.ID, &item.Article.Title, &item.Article.Content, &item.Article.URL,
			&item.Article.Source, &item.Article.PublishedAt, &item.Sentiment,
			&eventType, &description, &severity,
		); err != nil {
			return nil, fmt.Errorf("scan company article: %w", err)
		}

		if len(result) == 0 || rowID != lastID {
			result = append(result, item)
			lastID = rowID
		}
		if eventType.Valid {
			last := &result[len(result)-1]
			last.Events = append(last.Events, esg.Event{
				Type:        eventType.String,
				Description: description.String,
				Severity:    severity.Float64,
			})
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration: %w", err)
	}

	return result, nil
}
