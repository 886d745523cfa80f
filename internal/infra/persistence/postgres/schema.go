package postgres

// schemaDDL mirrors the snapshot buckets as relational tables so reporting
// tools can query claims without decoding JSON. The snapshot table remains
// the source of truth on startup.
const schemaDDL = `
CREATE TABLE IF NOT EXISTS users (
	id BIGINT PRIMARY KEY,
	username TEXT NOT NULL UNIQUE,
	password TEXT NOT NULL,
	email TEXT,
	full_name TEXT,
	last_login TIMESTAMPTZ,
	created_at TIMESTAMPTZ NOT NULL
);
CREATE TABLE IF NOT EXISTS claimants (
	id BIGINT PRIMARY KEY,
	full_name TEXT NOT NULL,
	email TEXT,
	phone TEXT,
	policy_number TEXT,
	street_address TEXT,
	city TEXT,
	state TEXT,
	zip_code TEXT,
	country TEXT,
	language TEXT NOT NULL DEFAULT 'en',
	currency TEXT NOT NULL DEFAULT 'USD',
	created_at TIMESTAMPTZ NOT NULL
);
CREATE TABLE IF NOT EXISTS claims (
	id BIGINT PRIMARY KEY,
	claimant_id BIGINT NOT NULL,
	total_value DOUBLE PRECISION NOT NULL DEFAULT 0,
	status TEXT NOT NULL DEFAULT 'draft',
	created_at TIMESTAMPTZ NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL
);
CREATE TABLE IF NOT EXISTS rooms (
	id BIGINT PRIMARY KEY,
	claim_id BIGINT NOT NULL,
	name TEXT NOT NULL,
	is_custom BOOLEAN NOT NULL DEFAULT FALSE
);
CREATE TABLE IF NOT EXISTS items (
	id BIGINT PRIMARY KEY,
	room_id BIGINT NOT NULL,
	name TEXT NOT NULL,
	description TEXT,
	category TEXT,
	cost DOUBLE PRECISION NOT NULL DEFAULT 0,
	quantity INTEGER NOT NULL DEFAULT 1,
	purchase_date TEXT,
	retailer TEXT,
	model TEXT,
	serial_number TEXT,
	brand TEXT,
	condition TEXT,
	notes TEXT,
	image_urls JSONB NOT NULL DEFAULT '[]',
	document_urls JSONB NOT NULL DEFAULT '[]',
	tags JSONB NOT NULL DEFAULT '[]',
	created_by BIGINT,
	updated_by BIGINT,
	created_at TIMESTAMPTZ NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL
);
CREATE TABLE IF NOT EXISTS documentations (
	id BIGINT PRIMARY KEY,
	item_id BIGINT NOT NULL,
	user_id BIGINT NOT NULL,
	document_type TEXT NOT NULL,
	source_type TEXT NOT NULL,
	title TEXT NOT NULL,
	description TEXT,
	file_url TEXT NOT NULL,
	source_url TEXT,
	source_name TEXT,
	metadata JSONB NOT NULL DEFAULT '{}',
	created_at TIMESTAMPTZ NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL
);
CREATE TABLE IF NOT EXISTS potential_duplicates (
	id BIGINT PRIMARY KEY,
	item_id_1 BIGINT NOT NULL,
	item_id_2 BIGINT NOT NULL,
	confidence DOUBLE PRECISION NOT NULL,
	status TEXT NOT NULL DEFAULT 'pending',
	created_at TIMESTAMPTZ NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL
);
CREATE TABLE IF NOT EXISTS collaborators (
	id BIGINT PRIMARY KEY,
	claim_id BIGINT NOT NULL,
	user_id BIGINT NOT NULL,
	email TEXT NOT NULL,
	role TEXT NOT NULL DEFAULT 'viewer',
	invite_status TEXT NOT NULL DEFAULT 'pending',
	created_at TIMESTAMPTZ NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL
);
CREATE TABLE IF NOT EXISTS state (
	bucket TEXT PRIMARY KEY,
	payload JSONB NOT NULL
);
`
