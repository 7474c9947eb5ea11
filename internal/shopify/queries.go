package shopify

// Shared GraphQL documents for the Admin API. Mutation payload fields are
// kept minimal: the remote node id plus the fields mirrored locally.

const codeDiscountFields = `
	id
	codeDiscount {
		... on DiscountCodeBasic {
			title
			startsAt
			endsAt
			status
			usageLimit
			asyncUsageCount
			customerGets {
				value {
					... on DiscountPercentage {
						percentage
					}
				}
			}
			codes(first: 100) {
				nodes {
					code
				}
			}
		}
		... on DiscountCodeBxgy {
			title
			startsAt
			endsAt
			status
			usageLimit
			asyncUsageCount
			codes(first: 100) {
				nodes {
					code
				}
			}
		}
	}`

const automaticDiscountFields = `
	id
	automaticDiscount {
		... on DiscountAutomaticBasic {
			title
			startsAt
			endsAt
			status
			customerGets {
				value {
					... on DiscountPercentage {
						percentage
					}
				}
			}
		}
		... on DiscountAutomaticBxgy {
			title
			startsAt
			endsAt
			status
		}
	}`

const discountCodeBasicCreateMutation = `
mutation discountCodeBasicCreate($basicCodeDiscount: DiscountCodeBasicInput!) {
	discountCodeBasicCreate(basicCodeDiscount: $basicCodeDiscount) {
		codeDiscountNode {` + codeDiscountFields + `
		}
		userErrors {
			field
			message
		}
	}
}`

const discountCodeBasicUpdateMutation = `
mutation discountCodeBasicUpdate($id: ID!, $basicCodeDiscount: DiscountCodeBasicInput!) {
	discountCodeBasicUpdate(id: $id, basicCodeDiscount: $basicCodeDiscount) {
		codeDiscountNode {` + codeDiscountFields + `
		}
		userErrors {
			field
			message
		}
	}
}`

const discountAutomaticBasicCreateMutation = `
mutation discountAutomaticBasicCreate($automaticBasicDiscount: DiscountAutomaticBasicInput!) {
	discountAutomaticBasicCreate(automaticBasicDiscount: $automaticBasicDiscount) {
		automaticDiscountNode {` + automaticDiscountFields + `
		}
		userErrors {
			field
			message
		}
	}
}`

const discountAutomaticBasicUpdateMutation = `
mutation discountAutomaticBasicUpdate($id: ID!, $automaticBasicDiscount: DiscountAutomaticBasicInput!) {
	discountAutomaticBasicUpdate(id: $id, automaticBasicDiscount: $automaticBasicDiscount) {
		automaticDiscountNode {` + automaticDiscountFields + `
		}
		userErrors {
			field
			message
		}
	}
}`

const discountCodeBxgyCreateMutation = `
mutation discountCodeBxgyCreate($bxgyCodeDiscount: DiscountCodeBxgyInput!) {
	discountCodeBxgyCreate(bxgyCodeDiscount: $bxgyCodeDiscount) {
		codeDiscountNode {` + codeDiscountFields + `
		}
		userErrors {
			field
			message
		}
	}
}`

const discountCodeBxgyUpdateMutation = `
mutation discountCodeBxgyUpdate($id: ID!, $bxgyCodeDiscount: DiscountCodeBxgyInput!) {
	discountCodeBxgyUpdate(id: $id, bxgyCodeDiscount: $bxgyCodeDiscount) {
		codeDiscountNode {` + codeDiscountFields + `
		}
		userErrors {
			field
			message
		}
	}
}`

const discountAutomaticBxgyCreateMutation = `
mutation discountAutomaticBxgyCreate($automaticBxgyDiscount: DiscountAutomaticBxgyInput!) {
	discountAutomaticBxgyCreate(automaticBxgyDiscount: $automaticBxgyDiscount) {
		automaticDiscountNode {` + automaticDiscountFields + `
		}
		userErrors {
			field
			message
		}
	}
}`

const discountAutomaticBxgyUpdateMutation = `
mutation discountAutomaticBxgyUpdate($id: ID!, $automaticBxgyDiscount: DiscountAutomaticBxgyInput!) {
	discountAutomaticBxgyUpdate(id: $id, automaticBxgyDiscount: $automaticBxgyDiscount) {
		automaticDiscountNode {` + automaticDiscountFields + `
		}
		userErrors {
			field
			message
		}
	}
}`

const discountCodeDeleteMutation = `
mutation discountCodeDelete($id: ID!) {
	discountCodeDelete(id: $id) {
		deletedCodeDiscountId
		userErrors {
			field
			message
		}
	}
}`

const discountAutomaticDeleteMutation = `
mutation discountAutomaticDelete($id: ID!) {
	discountAutomaticDelete(id: $id) {
		deletedAutomaticDiscountId
		userErrors {
			field
			message
		}
	}
}`

const discountRedeemCodeBulkAddMutation = `
mutation discountRedeemCodeBulkAdd($discountId: ID!, $codes: [DiscountRedeemCodeInput!]!) {
	discountRedeemCodeBulkAdd(discountId: $discountId, codes: $codes) {
		bulkCreation {
			id
		}
		userErrors {
			field
			message
		}
	}
}`

const discountCodeRedeemCodeBulkDeleteMutation = `
mutation discountCodeRedeemCodeBulkDelete($discountId: ID!, $search: String) {
	discountCodeRedeemCodeBulkDelete(discountId: $discountId, search: $search) {
		job {
			id
		}
		userErrors {
			field
			message
		}
	}
}`

const codeDiscountNodeQuery = `
query codeDiscountNode($id: ID!) {
	codeDiscountNode(id: $id) {` + codeDiscountFields + `
	}
}`

const automaticDiscountNodeQuery = `
query automaticDiscountNode($id: ID!) {
	automaticDiscountNode(id: $id) {` + automaticDiscountFields + `
	}
}`

const codeDiscountUsageQuery = `
query codeDiscountUsage($id: ID!) {
	codeDiscountNode(id: $id) {
		id
		codeDiscount {
			... on DiscountCodeBasic {
				asyncUsageCount
			}
			... on DiscountCodeBxgy {
				asyncUsageCount
			}
		}
	}
}`

const redeemCodesQuery = `
query redeemCodes($id: ID!, $first: Int!) {
	codeDiscountNode(id: $id) {
		id
		codeDiscount {
			... on DiscountCodeBasic {
				codes(first: $first) {
					nodes {
						code
					}
				}
			}
			... on DiscountCodeBxgy {
				codes(first: $first) {
					nodes {
						code
					}
				}
			}
		}
	}
}`

const productsQuery = `
query products($first: Int!, $query: String) {
	products(first: $first, query: $query) {
		nodes {
			id
			title
			handle
			status
		}
	}
}`

const collectionsQuery = `
query collections($first: Int!, $query: String) {
	collections(first: $first, query: $query) {
		nodes {
			id
			title
			handle
		}
	}
}`

const customersQuery = `
query customers($first: Int!, $query: String) {
	customers(first: $first, query: $query) {
		nodes {
			id
			displayName
			email
		}
	}
}`

const segmentsQuery = `
query segments($first: Int!) {
	segments(first: $first) {
		nodes {
			id
			name
			query
		}
	}
}`
