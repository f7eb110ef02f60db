package storage

const schema = `
CREATE TABLE IF NOT EXISTS markets (
    market_id       TEXT PRIMARY KEY,
    question        TEXT NOT NULL,
    category         TEXT NOT NULL DEFAULT '',
    resolution_date  TIMESTAMP,
    price_yes        DOUBLE PRECISION NOT NULL DEFAULT 0,
    price_no         DOUBLE PRECISION NOT NULL DEFAULT 0,
    volume_24h       DOUBLE PRECISION,
    liquidity        DOUBLE PRECISION,
    archived         BOOLEAN NOT NULL DEFAULT FALSE,
    active           BOOLEAN NOT NULL DEFAULT FALSE,
    closed           BOOLEAN NOT NULL DEFAULT FALSE
);

CREATE TABLE IF NOT EXISTS predictions (
    id                 TEXT PRIMARY KEY,
    market_id          TEXT NOT NULL REFERENCES markets(market_id),
    prediction_time    TIMESTAMP NOT NULL,
    model_probability  DOUBLE PRECISION NOT NULL,
    market_price       DOUBLE PRECISION NOT NULL,
    edge               DOUBLE PRECISION NOT NULL,
    confidence         DOUBLE PRECISION NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_predictions_time ON predictions(prediction_time DESC);

CREATE TABLE IF NOT EXISTS signals (
    id              TEXT PRIMARY KEY,
    prediction_id   TEXT NOT NULL REFERENCES predictions(id),
    market_id       TEXT NOT NULL REFERENCES markets(market_id),
    created_at      TIMESTAMP NOT NULL,
    side            TEXT NOT NULL,
    strength        TEXT NOT NULL,
    suggested_size  DOUBLE PRECISION NOT NULL,
    executed        BOOLEAN NOT NULL DEFAULT FALSE
);
CREATE INDEX IF NOT EXISTS idx_signals_created ON signals(created_at DESC);

CREATE TABLE IF NOT EXISTS trades (
    id             TEXT PRIMARY KEY,
    signal_id      TEXT NOT NULL REFERENCES signals(id),
    market_id      TEXT NOT NULL REFERENCES markets(market_id),
    side           TEXT NOT NULL,
    entry_price    DOUBLE PRECISION NOT NULL,
    size           DOUBLE PRECISION NOT NULL,
    entry_time     TIMESTAMP NOT NULL,
    exit_price     DOUBLE PRECISION,
    exit_time      TIMESTAMP,
    pnl            DOUBLE PRECISION,
    status         TEXT NOT NULL,
    paper_trading  BOOLEAN NOT NULL DEFAULT TRUE
);
CREATE INDEX IF NOT EXISTS idx_trades_entry ON trades(entry_time DESC);

CREATE TABLE IF NOT EXISTS portfolio_snapshots (
    id               TEXT PRIMARY KEY,
    snapshot_time    TIMESTAMP NOT NULL,
    total_value      DOUBLE PRECISION NOT NULL,
    cash             DOUBLE PRECISION NOT NULL,
    positions_value  DOUBLE PRECISION NOT NULL,
    total_exposure   DOUBLE PRECISION NOT NULL,
    daily_pnl        DOUBLE PRECISION NOT NULL DEFAULT 0,
    unrealized_pnl   DOUBLE PRECISION NOT NULL DEFAULT 0,
    realized_pnl     DOUBLE PRECISION NOT NULL DEFAULT 0,
    paper_trading    BOOLEAN NOT NULL DEFAULT TRUE
);
CREATE INDEX IF NOT EXISTS idx_portfolio_time ON portfolio_snapshots(snapshot_time DESC);
CREATE INDEX IF NOT EXISTS idx_portfolio_paper_time ON portfolio_snapshots(paper_trading, snapshot_time DESC);
`
