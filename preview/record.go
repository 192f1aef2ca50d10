package preview

import (
	"github.com/shopspring/decimal"
	"time"
)

type SaleType string

const (
	SaleOpenEdition    SaleType = "open_edition"
	SaleListing        SaleType = "listing"
	SaleDutchAuction   SaleType = "dutch_auction"
	SaleEnglishAuction SaleType = "english_auction"
	SaleNone           SaleType = "none"
)

const (
	Currency       = "XTZ"
	CurrencySymbol = "ꜩ"
)

// NFT is the display record of a single token. Exactly the fields of the
// selected SaleType are set among Price, Edition and OpenEdition.
type NFT struct {
	ID          string           `json:"id"`
	Name        string           `json:"name"`
	Description string           `json:"description,omitempty"`
	ImageURL    string           `json:"imageUrl,omitempty"`
	Creator     Creator          `json:"creator"`
	Collection  *CollectionInfo  `json:"collection,omitempty"`
	Price       *Price           `json:"price,omitempty"`
	SaleType    SaleType         `json:"saleType"`
	OpenEdition *OpenEditionInfo `json:"openEditionInfo,omitempty"`
	Edition     *Edition         `json:"edition,omitempty"`
	Marketplace MarketplaceRef   `json:"marketplace"`
	Attributes  []Attribute      `json:"attributes,omitempty"`
	Media       *Media           `json:"media,omitempty"`
}

type Creator struct {
	Address     string `json:"address"`
	Alias       string `json:"alias,omitempty"`
	Discord     string `json:"discord,omitempty"`
	Twitter     string `json:"twitter,omitempty"`
	Website     string `json:"website,omitempty"`
	Description string `json:"description,omitempty"`
}

type CollectionInfo struct {
	Name     string `json:"name"`
	Contract string `json:"contract,omitempty"`
	Stats    Stats  `json:"stats"`
}

// Price is in tez, never mutez.
type Price struct {
	Amount   decimal.Decimal `json:"amount"`
	Currency string          `json:"currency"`
	Symbol   string          `json:"symbol"`
}

type OpenEditionInfo struct {
	MaxPerWallet *int64     `json:"maxPerWallet,omitempty"`
	StartTime    *time.Time `json:"startTime,omitempty"`
	EndTime      *time.Time `json:"endTime,omitempty"`
	Minted       *int64     `json:"mintedCount,omitempty"`
}

type Edition struct {
	Current int64 `json:"current"`
	Total   int64 `json:"total"`
}

type MarketplaceRef struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

type Attribute struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

type Media struct {
	MimeType     string `json:"mimeType,omitempty"`
	ArtifactURI  string `json:"artifactUri,omitempty"`
	DisplayURI   string `json:"displayUri,omitempty"`
	ThumbnailURI string `json:"thumbnailUri,omitempty"`
}

// Stats are collection aggregates; money in tez.
type Stats struct {
	FloorPrice  *decimal.Decimal `json:"floorPrice,omitempty"`
	Items       *int64           `json:"items,omitempty"`
	Editions    *int64           `json:"editions,omitempty"`
	Owners      *int64           `json:"owners,omitempty"`
	Volume24h   *decimal.Decimal `json:"volume24h,omitempty"`
	VolumeTotal *decimal.Decimal `json:"volumeTotal,omitempty"`
}

// Collection is the display record of a collection or generative project.
type Collection struct {
	Contract         string         `json:"contract"`
	Name             string         `json:"name"`
	Description      string         `json:"description,omitempty"`
	Logo             string         `json:"logo,omitempty"`
	Type             string         `json:"collectionType,omitempty"`
	Stats            Stats          `json:"stats"`
	Socials          Socials        `json:"socials"`
	VerifiedCreators []string       `json:"verifiedCreators,omitempty"`
	Marketplace      MarketplaceRef `json:"marketplace"`
}

type Socials struct {
	Twitter string `json:"twitter,omitempty"`
	Website string `json:"website,omitempty"`
	Discord string `json:"discord,omitempty"`
}
