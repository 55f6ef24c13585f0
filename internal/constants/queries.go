package constants

// Read-model queries use "?" placeholders; repositories Rebind them for the
// active driver. Boolean literals are always passed as parameters so the same
// text runs on postgres, mysql and sqlite.

// Counter subqueries end with the column they are correlated on. Like the
// follower lists, they skip soft-deleted members and affiliates.
const (
	// args: true (accepted), true (followee active)
	countFolloweesOf = `SELECT COUNT(*) FROM member_follow_request fr
		JOIN affiliate fa ON fa.id = fr.to_affiliate_id
		JOIN entity fe ON fe.id = fa.entity_id
		WHERE fr.is_accepted = ? AND fe.is_active = ? AND fr.from_member_id = `

	// args: true (accepted), true (follower active)
	countFollowersOf = `SELECT COUNT(*) FROM member_follow_request fr
		JOIN member fm ON fm.id = fr.from_member_id
		JOIN affiliate fa ON fa.id = fm.affiliate_id
		JOIN entity fe ON fe.id = fa.entity_id
		WHERE fr.is_accepted = ? AND fe.is_active = ? AND fr.to_affiliate_id = `
)

const (
	// args: false (default privacy), true, true (followees), true, true (followers), true (active)
	SelectMemberExtended = `
	SELECT
		e.id AS entity_id,
		a.id AS affiliate_id,
		m.id AS member_id,
		m.username,
		md.email,
		md.fullname,
		md.bio,
		md.birthdate,
		COALESCE(md.is_private, ?) AS is_private,
		(md.member_id IS NOT NULL) AS has_description,
		e.created_at,
		(` + countFolloweesOf + `m.id) AS followees,
		(` + countFollowersOf + `a.id) AS followers
	FROM member m
	JOIN affiliate a ON a.id = m.affiliate_id
	JOIN entity e ON e.id = a.entity_id
	LEFT JOIN member_description md ON md.member_id = m.id
	WHERE e.is_active = ?`

	SelectCredentialsByUsername = `
	SELECT
		e.id AS entity_id,
		a.id AS affiliate_id,
		m.id AS member_id,
		e.is_active,
		ma.salt,
		ma.hash
	FROM member m
	JOIN affiliate a ON a.id = m.affiliate_id
	JOIN entity e ON e.id = a.entity_id
	JOIN member_auth ma ON ma.member_id = m.id
	WHERE m.username = ?
	LIMIT 1`

	// args: false (default privacy), affiliate id
	SelectAffiliateKind = `
	SELECT
		a.id AS affiliate_id,
		e.is_active,
		m.id AS member_id,
		b.id AS board_id,
		b.owner_member_id,
		COALESCE(md.is_private, bd.is_private, ?) AS is_private
	FROM affiliate a
	JOIN entity e ON e.id = a.entity_id
	LEFT JOIN member m ON m.affiliate_id = a.id
	LEFT JOIN member_description md ON md.member_id = m.id
	LEFT JOIN board b ON b.affiliate_id = a.id
	LEFT JOIN board_description bd ON bd.board_id = b.id
	WHERE a.id = ?`

	// args: followee affiliate id, true (accepted), true (active)
	SelectFollowers = `
	SELECT
		fr.id AS follow_request_id,
		a.id AS affiliate_id,
		m.username,
		md.fullname
	FROM member_follow_request fr
	JOIN member m ON m.id = fr.from_member_id
	JOIN affiliate a ON a.id = m.affiliate_id
	JOIN entity e ON e.id = a.entity_id
	LEFT JOIN member_description md ON md.member_id = m.id
	WHERE fr.to_affiliate_id = ? AND fr.is_accepted = ? AND e.is_active = ?
	ORDER BY fr.created_at DESC, fr.id DESC`

	// args: follower affiliate id, true (accepted), true (active)
	SelectFollowees = `
	SELECT
		fr.id AS follow_request_id,
		a.id AS affiliate_id,
		m.username,
		md.fullname,
		b.title
	FROM member_follow_request fr
	JOIN member fm ON fm.id = fr.from_member_id
	JOIN affiliate a ON a.id = fr.to_affiliate_id
	JOIN entity e ON e.id = a.entity_id
	LEFT JOIN member m ON m.affiliate_id = a.id
	LEFT JOIN member_description md ON md.member_id = m.id
	LEFT JOIN board b ON b.affiliate_id = a.id
	WHERE fm.affiliate_id = ? AND fr.is_accepted = ? AND e.is_active = ?
	ORDER BY fr.created_at DESC, fr.id DESC`

	// args: true (active), consultant affiliate id, consultant member id
	SelectPendingRequests = `
	SELECT
		fr.id AS follow_request_id,
		a.id AS affiliate_id,
		m.username,
		md.fullname,
		b.title,
		fr.to_affiliate_id AS consultant_affiliate_id
	FROM member_follow_request fr
	JOIN member m ON m.id = fr.from_member_id
	JOIN affiliate a ON a.id = m.affiliate_id
	JOIN entity e ON e.id = a.entity_id
	LEFT JOIN member_description md ON md.member_id = m.id
	LEFT JOIN board b ON b.affiliate_id = fr.to_affiliate_id
	WHERE fr.is_accepted IS NULL AND e.is_active = ?
		AND (fr.to_affiliate_id = ? OR b.owner_member_id = ?)
	ORDER BY fr.created_at DESC, fr.id DESC`

	// args: consultant affiliate id, false (default privacy), then true, true for each of
	// member followees, member followers and board followers, then true, true (post and author active)
	SelectFeedPosts = `
	SELECT
		p.id AS post_id,
		p.body,
		e.created_at,
		(SELECT COUNT(*) FROM post_saved ps WHERE ps.post_id = p.id) AS times_saved,
		EXISTS (SELECT 1 FROM post_saved ps WHERE ps.post_id = p.id AND ps.affiliate_id = ?) AS saved_by_consultant,
		p.from_affiliate_id AS post_membership_affiliate_id,
		p.from_affiliate_id AS member_affiliate_id,
		md.fullname,
		m.username,
		COALESCE(md.is_private, ?) AS member_is_private,
		(` + countFolloweesOf + `m.id) AS member_followees,
		(` + countFollowersOf + `p.from_affiliate_id) AS member_followers,
		b.affiliate_id AS board_affiliate_id,
		b.title,
		bd.about,
		bd.is_private AS board_is_private,
		(` + countFollowersOf + `b.affiliate_id) AS board_followers
	FROM post p
	JOIN entity e ON e.id = p.entity_id
	JOIN affiliate aa ON aa.id = p.from_affiliate_id
	JOIN entity ae ON ae.id = aa.entity_id
	JOIN member m ON m.affiliate_id = p.from_affiliate_id
	LEFT JOIN member_description md ON md.member_id = m.id
	LEFT JOIN post_membership pmb ON pmb.post_id = p.id AND pmb.affiliate_id <> p.from_affiliate_id
	LEFT JOIN board b ON b.affiliate_id = pmb.affiliate_id
	LEFT JOIN board_description bd ON bd.board_id = b.id
	WHERE e.is_active = ? AND ae.is_active = ? AND %s
	ORDER BY e.created_at DESC, p.id DESC
	LIMIT ? OFFSET ?`

	// args: consultant affiliate id, consultant member id, true (accepted), consultant member id,
	// then true (private), consultant affiliate id, consultant member id, consultant member id, true (accepted).
	// Posts shared to a private board stay out unless the consultant wrote them, owns the board or follows it.
	FeedFilterHome = `EXISTS (
		SELECT 1 FROM post_membership pm2
		WHERE pm2.post_id = p.id AND (
			pm2.affiliate_id = ?
			OR pm2.affiliate_id IN (SELECT fr2.to_affiliate_id FROM member_follow_request fr2 WHERE fr2.from_member_id = ? AND fr2.is_accepted = ?)
			OR pm2.affiliate_id IN (SELECT ob.affiliate_id FROM board ob WHERE ob.owner_member_id = ?)
		))
		AND NOT EXISTS (
			SELECT 1 FROM post_membership pm3
			JOIN board pb ON pb.affiliate_id = pm3.affiliate_id
			JOIN board_description pbd ON pbd.board_id = pb.id
			WHERE pm3.post_id = p.id AND pbd.is_private = ?
				AND p.from_affiliate_id <> ?
				AND pb.owner_member_id <> ?
				AND pm3.affiliate_id NOT IN (SELECT fr3.to_affiliate_id FROM member_follow_request fr3 WHERE fr3.from_member_id = ? AND fr3.is_accepted = ?)
		)`

	// args: affiliate id
	FeedFilterAffiliate = `EXISTS (SELECT 1 FROM post_membership pm2 WHERE pm2.post_id = p.id AND pm2.affiliate_id = ?)`

	// args: consultant affiliate id
	FeedFilterSaved = `EXISTS (SELECT 1 FROM post_saved ps2 WHERE ps2.post_id = p.id AND ps2.affiliate_id = ?)`

	// args: false (default privacy), true, true (followers), board id, true (active)
	SelectBoardExtended = `
	SELECT
		e.id AS entity_id,
		a.id AS affiliate_id,
		b.id AS board_id,
		b.owner_member_id,
		b.title,
		bd.about,
		COALESCE(bd.is_private, ?) AS is_private,
		e.created_at,
		(` + countFollowersOf + `a.id) AS followers
	FROM board b
	JOIN affiliate a ON a.id = b.affiliate_id
	JOIN entity e ON e.id = a.entity_id
	LEFT JOIN board_description bd ON bd.board_id = b.id
	WHERE b.id = ? AND e.is_active = ?`
)
