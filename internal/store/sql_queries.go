package store

const (
	createUser = `INSERT INTO users (login, password_hash, name, is_admin, signing_key_id, public_key)
    VALUES ($1, $2, $3, $4, $5, $6)
    RETURNING user_id, login, password_hash, name, is_admin, signing_key_id, public_key, created_at;`

	findUserByLogin = `SELECT user_id, login, password_hash, name, is_admin, signing_key_id, public_key, created_at
    FROM users
    WHERE login = $1;`

	findUserByID = `SELECT user_id, login, password_hash, name, is_admin, signing_key_id, public_key, created_at
    FROM users
    WHERE user_id = $1;`

	createOrder = `INSERT INTO orders (
			sender_id,
			recipient_name,
			amount,
			video_name,
			video_hash,
			encrypted_path,
			wrapped_key_path,
			expires_at,
			active,
			sender_public_key,
			signature,
			signed_at,
			created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING id;`

	findOrderByID = `SELECT id, sender_id, recipient_name, amount, video_name, video_hash,
			encrypted_path, wrapped_key_path, expires_at, active, sender_public_key,
			signature, signed_at, created_at
		FROM orders
		WHERE id = $1;`

	appendAuditEntry = `INSERT INTO audit_log (actor_id, action, entity, entity_id, message)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at;`
)

// orderColumns is the canonical column list of the orders table, shared by
// the squirrel-built listing query so its scan order matches findOrderByID.
var orderColumns = []string{
	"id", "sender_id", "recipient_name", "amount", "video_name", "video_hash",
	"encrypted_path", "wrapped_key_path", "expires_at", "active",
	"sender_public_key", "signature", "signed_at", "created_at",
}
