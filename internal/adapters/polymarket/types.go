package polymarket

import "encoding/json"

// rawToken is one outcome token as returned by the price API.
type rawToken struct {
	TokenID string          `json:"token_id"`
	Outcome string          `json:"outcome"`
	Price   json.Number     `json:"price"`
	Extra   json.RawMessage `json:"-"`
}

// rawPriceMarket is one market object from the price/orderbook API. It is
// authoritative for outcome_prices and market identity.
type rawPriceMarket struct {
	ConditionID string     `json:"condition_id"`
	QuestionID  string     `json:"question_id"`
	Question    string     `json:"question"`
	Archived    bool       `json:"archived"`
	Active      bool       `json:"active"`
	Closed      bool       `json:"closed"`
	Tokens      []rawToken `json:"tokens"`
}

// rawPriceMarketsPage is one page of the price API's market listing.
type rawPriceMarketsPage struct {
	Data       []rawPriceMarket `json:"data"`
	NextCursor string           `json:"next_cursor"`
}

// endCursor is the price API's sentinel meaning "no more pages".
const endCursor = "LTE="

// rawMetadataMarket is one market object from the metadata API. It is
// authoritative for volume_24h, liquidity and category.
type rawMetadataMarket struct {
	ConditionID string      `json:"condition_id"`
	QuestionID  string      `json:"question_id"`
	Category    string      `json:"category"`
	Volume      json.Number `json:"volume"`
	Liquidity   json.Number `json:"liquidity"`
	EndDateISO  string      `json:"end_date_iso"`
}

// rawMidpoint is the midpoint endpoint's response body.
type rawMidpoint struct {
	Mid json.Number `json:"mid"`
}
