package indexer

import (
	"bytes"
	"encoding/json"
	"github.com/shopspring/decimal"
	"time"
)

// TzktToken is one item of TzKT `/v1/tokens`. The balances shape nests the
// token under `token` and carries the holder in `account`.
type TzktToken struct {
	ID          int64         `json:"id"`
	Contract    *TzktAccount  `json:"contract"`
	TokenID     string        `json:"tokenId"`
	TotalSupply string        `json:"totalSupply"`
	FirstMinter *TzktAccount  `json:"firstMinter"`
	Account     *TzktAccount  `json:"account"`
	Metadata    *TzktMetadata `json:"metadata"`
	Token       *TzktToken    `json:"token"`
}

// Flatten lifts a nested `token` to the top level, keeping the outer account.
func (t *TzktToken) Flatten() *TzktToken {
	if t == nil || t.Token == nil {
		return t
	}
	inner := *t.Token
	if inner.Account == nil {
		inner.Account = t.Account
	}
	inner.Token = nil
	return &inner
}

type TzktAccount struct {
	Address string `json:"address"`
	Alias   string `json:"alias"`
}

// TzktMetadata is the TZIP-21 metadata as indexed by TzKT.
type TzktMetadata struct {
	Name         string          `json:"name"`
	Description  string          `json:"description"`
	Image        string          `json:"image"`
	DisplayURI   string          `json:"displayUri"`
	ThumbnailURI string          `json:"thumbnailUri"`
	ArtifactURI  string          `json:"artifactUri"`
	Creators     []string        `json:"creators"`
	Formats      []TzktFormat    `json:"formats"`
	Attributes   []TzktAttribute `json:"attributes"`
}

type TzktFormat struct {
	URI      string `json:"uri"`
	MimeType string `json:"mimeType"`
}

type TzktAttribute struct {
	Name  string    `json:"name"`
	Value AttrValue `json:"value"`
}

// AttrValue accepts a JSON string or any scalar and keeps its text.
type AttrValue string

func (v *AttrValue) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*v = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*v = AttrValue(s)
		return nil
	}
	*v = AttrValue(data)
	return nil
}

// ObjktToken is the `token` row of the OBJKT indexer with its sale relations.
// Money fields are mutez.
type ObjktToken struct {
	TokenID      string           `json:"token_id"`
	FaContract   string           `json:"fa_contract"`
	Name         string           `json:"name"`
	Description  string           `json:"description"`
	DisplayURI   string           `json:"display_uri"`
	ThumbnailURI string           `json:"thumbnail_uri"`
	ArtifactURI  string           `json:"artifact_uri"`
	Mime         string           `json:"mime"`
	Supply       *int64           `json:"supply"`
	Attributes   []ObjktAttribute `json:"attributes"`
	Creators     []ObjktCreator   `json:"creators"`
	Fa           *ObjktFa         `json:"fa"`

	ListingsActive        []ObjktListing        `json:"listings_active"`
	OpenEditionActive     *ObjktOpenEdition     `json:"open_edition_active"`
	EnglishAuctionsActive []ObjktEnglishAuction `json:"english_auctions_active"`
	DutchAuctionsActive   []ObjktDutchAuction   `json:"dutch_auctions_active"`
}

type ObjktAttribute struct {
	Attribute struct {
		Name  string    `json:"name"`
		Value AttrValue `json:"value"`
	} `json:"attribute"`
}

type ObjktCreator struct {
	CreatorAddress string       `json:"creator_address"`
	Holder         *ObjktHolder `json:"holder"`
}

// ObjktHolder is an account profile.
type ObjktHolder struct {
	Address     string `json:"address"`
	Alias       string `json:"alias"`
	Description string `json:"description"`
	Twitter     string `json:"twitter"`
	Website     string `json:"website"`
	Discord     string `json:"discord"`
}

// CurrencyTez is the currency_id of listings priced in mutez.
const CurrencyTez = 1

type ObjktListing struct {
	Price      decimal.Decimal `json:"price"`
	AmountLeft int64           `json:"amount_left"`
	CurrencyID int             `json:"currency_id"`
}

type ObjktOpenEdition struct {
	Price        decimal.Decimal `json:"price"`
	MaxPerWallet *int64          `json:"max_per_wallet"`
	StartTime    *time.Time      `json:"start_time"`
	EndTime      *time.Time      `json:"end_time"`
}

type ObjktEnglishAuction struct {
	Reserve    decimal.Decimal     `json:"reserve"`
	HighestBid decimal.NullDecimal `json:"highest_bid"`
	EndTime    *time.Time          `json:"end_time"`
}

type ObjktDutchAuction struct {
	StartPrice decimal.Decimal `json:"start_price"`
	EndPrice   decimal.Decimal `json:"end_price"`
	StartTime  *time.Time      `json:"start_time"`
	EndTime    *time.Time      `json:"end_time"`
}

// ObjktFa is a token contract (collection) row with its aggregates.
type ObjktFa struct {
	Contract       string              `json:"contract"`
	Name           string              `json:"name"`
	Description    string              `json:"description"`
	Logo           string              `json:"logo"`
	Path           string              `json:"path"`
	CollectionType string              `json:"collection_type"`
	Items          *int64              `json:"items"`
	Editions       *int64              `json:"editions"`
	Owners         *int64              `json:"owners"`
	FloorPrice     decimal.NullDecimal `json:"floor_price"`
	Volume24h      decimal.NullDecimal `json:"volume_24h"`
	VolumeTotal    decimal.NullDecimal `json:"volume_total"`
	Twitter        string              `json:"twitter"`
	Website        string              `json:"website"`
	Discord        string              `json:"discord"`
	Creator        *ObjktHolder        `json:"creator"`
	Collaborators  []struct {
		CollaboratorAddress string `json:"collaborator_address"`
	} `json:"collaborators"`
}

// ObjktGallery is a generative project / gallery. It has no contract of its
// own, tokens are sampled to find one.
type ObjktGallery struct {
	GalleryID   string              `json:"gallery_id"`
	Slug        string              `json:"slug"`
	Name        string              `json:"name"`
	Description string              `json:"description"`
	Logo        string              `json:"logo"`
	Items       *int64              `json:"items"`
	Editions    *int64              `json:"editions"`
	Owners      *int64              `json:"owners"`
	FloorPrice  decimal.NullDecimal `json:"floor_price"`
	Volume24h   decimal.NullDecimal `json:"volume_24h"`
	VolumeTotal decimal.NullDecimal `json:"volume_total"`
	Curators    []struct {
		CuratorAddress string `json:"curator_address"`
	} `json:"curators"`
	Tokens []struct {
		Token ObjktToken `json:"token"`
	} `json:"tokens"`
}
