package database

import (
	"database/sql"
	"fmt"

	"investorinfo/app/scrape"
)

var _ QuoteRepository = (*quoteRepository)(nil)

// quoteRepository reconciles extracted quotes against stored rows.
// The natural key is (symbol, calendar date of the scrape), so
// repeated intraday scrapes collapse into one row per day.
type quoteRepository struct {
	db *DB
}

func NewQuoteRepository(db *DB) QuoteRepository {
	return &quoteRepository{db: db}
}

func (r *quoteRepository) UpsertQuote(record scrape.QuoteRecord) (UpsertResult, error) {
	quoteDate := record.ScrapedAt.Format("2006-01-02")

	var existingID int64
	err := r.db.QueryRow(
		"SELECT id FROM stock_quotes WHERE symbol = ? AND quote_date = ?",
		record.Symbol, quoteDate,
	).Scan(&existingID)

	if err == sql.ErrNoRows {
		_, err = r.db.Exec(`
			INSERT INTO stock_quotes (symbol, quote_date, price, change_amount, change_percent, volume, market_cap, source, scraped_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		`, record.Symbol, quoteDate, record.Price, record.ChangeAmount, record.ChangePercent,
			record.Volume, record.MarketCap, record.Source, record.ScrapedAt)
		if err != nil {
			return "", fmt.Errorf("failed to insert quote: %w", err)
		}
		return UpsertInserted, nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to look up quote: %w", err)
	}

	_, err = r.db.Exec(`
		UPDATE stock_quotes
		SET price = ?, change_amount = ?, change_percent = ?, volume = ?,
		    market_cap = ?, source = ?, scraped_at = ?
		WHERE id = ?
	`, record.Price, record.ChangeAmount, record.ChangePercent, record.Volume,
		record.MarketCap, record.Source, record.ScrapedAt, existingID)
	if err != nil {
		return "", fmt.Errorf("failed to update quote: %w", err)
	}

	return UpsertUpdated, nil
}

func (r *quoteRepository) GetLatestQuotes(limit int) ([]StockQuote, error) {
	rows, err := r.db.Query(`
		SELECT id, symbol, quote_date, price, change_amount, change_percent,
		       volume, market_cap, source, scraped_at, created_at
		FROM stock_quotes
		ORDER BY quote_date DESC, symbol ASC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get latest quotes: %w", err)
	}
	defer rows.Close()

	return scanQuotes(rows)
}

func (r *quoteRepository) GetQuotesBySymbol(symbol string, limit int) ([]StockQuote, error) {
	rows, err := r.db.Query(`
		SELECT id, symbol, quote_date, price, change_amount, change_percent,
		       volume, market_cap, source, scraped_at, created_at
		FROM stock_quotes
		WHERE symbol = ?
		ORDER BY quote_date DESC
		LIMIT ?
	`, symbol, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get quotes for symbol: %w", err)
	}
	defer rows.Close()

	return scanQuotes(rows)
}

func (r *quoteRepository) GetQuoteCount() (int, error) {
	var count int
	err := r.db.QueryRow("SELECT COUNT(*) FROM stock_quotes").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to get quote count: %w", err)
	}
	return count, nil
}

func scanQuotes(rows *sql.Rows) ([]StockQuote, error) {
	var quotes []StockQuote
	for rows.Next() {
		var quote StockQuote
		err := rows.Scan(
			&quote.ID, &quote.Symbol, &quote.QuoteDate, &quote.Price,
			&quote.ChangeAmount, &quote.ChangePercent, &quote.Volume,
			&quote.MarketCap, &quote.Source, &quote.ScrapedAt, &quote.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan quote row: %w", err)
		}
		quotes = append(quotes, quote)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating quote rows: %w", err)
	}

	return quotes, nil
}
