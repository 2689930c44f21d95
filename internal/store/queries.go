package store

const (
	getWatermark = `
		SELECT last_synced
		FROM resources
		WHERE resource_type = ?;`

	updateWatermark = `
		UPDATE resources
		SET last_synced = ?
		WHERE resource_type = ?;`

	insertWatermark = `
		INSERT INTO resources (resource_type, last_synced)
		VALUES (?, ?);`

	listWatermarks = `
		SELECT resource_type, last_synced
		FROM resources
		ORDER BY resource_type;`

	upsertRecord = `
		INSERT INTO records (
			resource_type,
			uid,
			parent_type,
			parent_uid,
			last_updated,
			deleted,
			synced,
			body
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (resource_type, uid) DO UPDATE SET
			parent_type  = COALESCE(excluded.parent_type, records.parent_type),
			parent_uid   = COALESCE(excluded.parent_uid, records.parent_uid),
			last_updated = excluded.last_updated,
			deleted      = excluded.deleted,
			synced       = excluded.synced,
			body         = excluded.body;`

	markRecordSynced = `
		UPDATE records
		SET synced = TRUE
		WHERE resource_type = ? AND uid = ?;`

	upsertFailedItem = `
		INSERT INTO failed_items (
			item_type,
			item_id,
			kind,
			error_code,
			error_body,
			created_at
		) VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT (item_type, item_id) DO UPDATE SET
			kind       = excluded.kind,
			error_code = excluded.error_code,
			error_body = excluded.error_body,
			created_at = excluded.created_at;`

	clearFailedItem = `
		DELETE FROM failed_items
		WHERE item_type = ? AND item_id = ?;`
)
