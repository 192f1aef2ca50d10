package indexer

const faFields = `
	contract
	name
	description
	logo
	path
	collection_type
	items
	editions
	owners
	floor_price
	volume_24h
	volume_total
	twitter
	website
	discord
	creator { address alias twitter website discord description }
	collaborators { collaborator_address }`

const queryToken = `query TokenDetail($contract: String!, $tokenId: String!) {
  token(where: {fa_contract: {_eq: $contract}, token_id: {_eq: $tokenId}}, limit: 1) {
    token_id
    fa_contract
    name
    description
    display_uri
    thumbnail_uri
    artifact_uri
    mime
    supply
    attributes { attribute { name value } }
    creators { creator_address holder { address alias description twitter website discord } }
    fa {` + faFields + `
    }
    listings_active(order_by: {price: asc}) { price amount_left currency_id }
    open_edition_active { price max_per_wallet start_time end_time }
    english_auctions_active { reserve highest_bid end_time }
    dutch_auctions_active { start_price end_price start_time end_time }
  }
}`

const queryFaByPath = `query FaByPath($path: String!) {
  fa(where: {path: {_eq: $path}}, limit: 1) { contract }
}`

const queryCollection = `query CollectionDetail($contract: String!) {
  fa(where: {contract: {_eq: $contract}}, limit: 1) {` + faFields + `
  }
}`

const galleryFields = `
    gallery_id
    slug
    name
    description
    logo
    items
    editions
    owners
    floor_price
    volume_24h
    volume_total
    curators { curator_address }
    tokens(limit: 10) { token { token_id fa_contract fa { name logo } } }`

const queryGalleryByID = `query GalleryByID($id: String!, $ref: String!) {
  gallery(where: {_or: [{gallery_id: {_eq: $id}}, {slug: {_ilike: $ref}}]}, limit: 1) {` + galleryFields + `
  }
}`

const queryGalleryBySlug = `query GalleryBySlug($ref: String!) {
  gallery(where: {_or: [{slug: {_ilike: $ref}}, {name: {_ilike: $ref}}]}, limit: 1) {` + galleryFields + `
  }
}`
