package model

// PlayerInfo is the public view of a player: never includes the secret
type PlayerInfo struct {
	ID       PlayerID
	Username string
}

// Info returns the public view of the player
func (p *Player) Info() PlayerInfo {
	return PlayerInfo{ID: p.ID, Username: p.Username}
}

// PlayerInfos returns the public view of every filled slot, in slot order
func (r *Room) PlayerInfos() []PlayerInfo {
	infos := make([]PlayerInfo, 0, MaxPlayers)
	for _, p := range r.Players {
		if p != nil {
			infos = append(infos, p.Info())
		}
	}
	return infos
}
