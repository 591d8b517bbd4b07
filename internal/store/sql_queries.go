package store

const (
	findUserByUsername = `SELECT user_id, username, password_hash, role, carrier_access, is_active, created_at, last_login
    FROM api_users
    WHERE username = $1;`

	touchLastLogin = `UPDATE api_users
    SET last_login = NOW()
    WHERE user_id = $1;`
)
