package database

import (
	"database/sql"
	"fmt"
	"time"

	"investorinfo/app/scrape"
)

var _ NewsRepository = (*newsRepository)(nil)

// newsRepository reconciles extracted articles against stored rows.
// The natural key is the article link.
type newsRepository struct {
	db *DB
}

func NewNewsRepository(db *DB) NewsRepository {
	return &newsRepository{db: db}
}

// UpsertArticle looks the record up by link and either overwrites the
// mutable fields of the existing row (creation timestamp untouched) or
// inserts a new one.
func (r *newsRepository) UpsertArticle(record scrape.NewsRecord) (UpsertResult, error) {
	var existingID int64
	err := r.db.QueryRow("SELECT id FROM news_articles WHERE link = ?", record.Link).Scan(&existingID)

	if err == sql.ErrNoRows {
		_, err = r.db.Exec(`
			INSERT INTO news_articles (link, title, summary, content, source, publish_date, sentiment, scraped_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		`, record.Link, record.Title, record.Summary, record.Content,
			record.Source, record.PublishDate, record.Sentiment, record.ScrapedAt)
		if err != nil {
			return "", fmt.Errorf("failed to insert article: %w", err)
		}
		return UpsertInserted, nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to look up article: %w", err)
	}

	// Re-extraction wins: all mutable fields take the incoming values.
	// An emptied content column re-arms body extraction.
	_, err = r.db.Exec(`
		UPDATE news_articles
		SET title = ?, summary = ?, content = ?, source = ?, publish_date = ?,
		    sentiment = ?, scraped_at = ?,
		    content_extraction_status = CASE WHEN ? = '' THEN 'pending' ELSE content_extraction_status END
		WHERE id = ?
	`, record.Title, record.Summary, record.Content, record.Source, record.PublishDate,
		record.Sentiment, record.ScrapedAt, record.Content, existingID)
	if err != nil {
		return "", fmt.Errorf("failed to update article: %w", err)
	}

	return UpsertUpdated, nil
}

func (r *newsRepository) GetRecentArticles(limit int) ([]NewsArticle, error) {
	rows, err := r.db.Query(`
		SELECT id, link, title, summary, content, source, publish_date, sentiment,
		       scraped_at, created_at, content_extraction_status,
		       content_extracted_at, content_extraction_error
		FROM news_articles
		ORDER BY scraped_at DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get recent articles: %w", err)
	}
	defer rows.Close()

	var articles []NewsArticle
	for rows.Next() {
		var article NewsArticle
		err := rows.Scan(
			&article.ID, &article.Link, &article.Title, &article.Summary,
			&article.Content, &article.Source, &article.PublishDate, &article.Sentiment,
			&article.ScrapedAt, &article.CreatedAt, &article.ContentExtractionStatus,
			&article.ContentExtractedAt, &article.ContentExtractionError,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan article row: %w", err)
		}
		articles = append(articles, article)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating article rows: %w", err)
	}

	return articles, nil
}

func (r *newsRepository) GetArticleCount() (int, error) {
	var count int
	err := r.db.QueryRow("SELECT COUNT(*) FROM news_articles").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to get article count: %w", err)
	}
	return count, nil
}

// GetArticlesForExtraction returns articles whose body has not been
// fetched yet, skipping permanent failures.
func (r *newsRepository) GetArticlesForExtraction(limit int) ([]ArticleForExtraction, error) {
	rows, err := r.db.Query(`
		SELECT id, link
		FROM news_articles
		WHERE content = '' AND content_extraction_status != 'failed'
		ORDER BY scraped_at DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get articles for extraction: %w", err)
	}
	defer rows.Close()

	var articles []ArticleForExtraction
	for rows.Next() {
		var article ArticleForExtraction
		if err := rows.Scan(&article.ID, &article.Link); err != nil {
			return nil, fmt.Errorf("failed to scan extraction row: %w", err)
		}
		articles = append(articles, article)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating extraction rows: %w", err)
	}

	return articles, nil
}

func (r *newsRepository) UpdateExtractedContent(articleID int64, content string, status string, extractedAt *time.Time, errorMsg string) error {
	_, err := r.db.Exec(`
		UPDATE news_articles
		SET content = ?, content_extraction_status = ?, content_extracted_at = ?, content_extraction_error = ?
		WHERE id = ?
	`, content, status, extractedAt, errorMsg, articleID)

	if err != nil {
		return fmt.Errorf("failed to update extracted content: %w", err)
	}

	return nil
}
