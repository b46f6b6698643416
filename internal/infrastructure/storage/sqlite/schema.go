package sqlite

// schema is the full table set. CREATE TABLE IF NOT EXISTS keeps startup
// idempotent; there is no separate migration tool for this embedded store.
const schema = `
CREATE TABLE IF NOT EXISTS products (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	product_name TEXT NOT NULL,
	product_code TEXT UNIQUE,
	category TEXT,
	brand TEXT,
	buying_price REAL NOT NULL,
	default_selling_price REAL NOT NULL,
	stock_quantity REAL DEFAULT 0,
	unit TEXT,
	tax_percentage REAL DEFAULT 0,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	is_deleted INTEGER DEFAULT 0
);

CREATE TABLE IF NOT EXISTS product_images (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	product_id INTEGER NOT NULL,
	image_path TEXT NOT NULL,
	FOREIGN KEY(product_id) REFERENCES products(id)
);

CREATE TABLE IF NOT EXISTS purchases (
	purchase_id INTEGER PRIMARY KEY AUTOINCREMENT,
	supplier_name TEXT,
	supplier_phone TEXT,
	invoice_number TEXT,
	purchase_date DATETIME DEFAULT CURRENT_TIMESTAMP,
	total_amount REAL,
	notes TEXT,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS purchase_items (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	purchase_id INTEGER NOT NULL,
	product_id INTEGER NOT NULL,
	quantity REAL NOT NULL,
	buying_price REAL NOT NULL,
	extra_charge REAL DEFAULT 0,
	subtotal REAL NOT NULL,
	purchase_unit_cost REAL DEFAULT 0,
	FOREIGN KEY(purchase_id) REFERENCES purchases(purchase_id),
	FOREIGN KEY(product_id) REFERENCES products(id)
);

CREATE TABLE IF NOT EXISTS orders (
	order_id INTEGER PRIMARY KEY AUTOINCREMENT,
	order_date DATETIME DEFAULT CURRENT_TIMESTAMP,
	order_type TEXT NOT NULL,
	customer_name TEXT,
	customer_phone TEXT,
	customer_address TEXT,
	subtotal REAL,
	extra_charge REAL DEFAULT 0,
	delivery_charge REAL DEFAULT 0,
	discount REAL DEFAULT 0,
	grand_total REAL,
	payment_method TEXT,
	notes TEXT
);

CREATE TABLE IF NOT EXISTS order_items (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	order_id INTEGER NOT NULL,
	product_id INTEGER NOT NULL,
	quantity REAL NOT NULL,
	selling_price REAL NOT NULL,
	subtotal REAL NOT NULL,
	buying_price_snapshot REAL,
	FOREIGN KEY(order_id) REFERENCES orders(order_id),
	FOREIGN KEY(product_id) REFERENCES products(id)
);

CREATE TABLE IF NOT EXISTS settings (
	key TEXT PRIMARY KEY,
	value TEXT
);

CREATE TABLE IF NOT EXISTS users (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	username TEXT NOT NULL UNIQUE,
	password_hash TEXT NOT NULL,
	role TEXT NOT NULL DEFAULT 'staff',
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS activity_logs (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	user_id INTEGER,
	username TEXT NOT NULL,
	action TEXT NOT NULL,
	entity_type TEXT NOT NULL,
	entity_id INTEGER,
	description TEXT,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS expenses (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	expense_date DATETIME DEFAULT CURRENT_TIMESTAMP,
	category TEXT,
	amount REAL NOT NULL,
	notes TEXT,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_purchase_items_purchase ON purchase_items(purchase_id);
CREATE INDEX IF NOT EXISTS idx_purchase_items_product ON purchase_items(product_id);
CREATE INDEX IF NOT EXISTS idx_order_items_order ON order_items(order_id);
CREATE INDEX IF NOT EXISTS idx_order_items_product ON order_items(product_id);
CREATE INDEX IF NOT EXISTS idx_activity_logs_created ON activity_logs(created_at);
`
