package cli

import (
	"errors"

	"github.com/spf13/cobra"
)

var errNoSession = errors.New("no room in session: create or join a room first, or pass the ids explicitly")

// identity holds the --room-id and --player-id overrides
type identity struct {
	roomID   string
	playerID string
}

func (id *identity) addFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&id.roomID, "room-id", "", "Room ID (default: from session)")
	cmd.Flags().StringVar(&id.playerID, "player-id", "", "Player ID (default: from session)")
}

// resolve fills in missing ids from the session
func (id *identity) resolve() (string, string, error) {
	roomID, playerID := id.roomID, id.playerID
	if roomID == "" {
		roomID = cfg.Session.RoomID
	}
	if playerID == "" {
		playerID = cfg.Session.PlayerID
	}
	if roomID == "" || playerID == "" {
		return "", "", errNoSession
	}
	return roomID, playerID, nil
}

func newGameCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "game",
		Short: "Game action commands",
	}

	cmd.AddCommand(newGameSecretCmd())
	cmd.AddCommand(newGameGuessCmd())
	cmd.AddCommand(newGameStatusCmd())

	return cmd
}

func newGameSecretCmd() *cobra.Command {
	var id identity

	cmd := &cobra.Command{
		Use:   "secret <digits>",
		Short: "Set your four digit secret",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			roomID, playerID, err := id.resolve()
			if err != nil {
				return err
			}

			if err := client.SetSecret(roomID, playerID, args[0]); err != nil {
				return err
			}

			if roomID == cfg.Session.RoomID && playerID == cfg.Session.PlayerID {
				session := cfg.Session
				session.Secret = args[0]
				if err := cfg.SaveSession(session); err != nil {
					return err
				}
			}

			out := NewOutput(cfg.Output, cmd.OutOrStdout())
			out.PrintMessage("Secret set")
			return nil
		},
	}

	id.addFlags(cmd)
	return cmd
}

func newGameGuessCmd() *cobra.Command {
	var id identity

	cmd := &cobra.Command{
		Use:   "guess <digits>",
		Short: "Guess your rival's secret",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			roomID, playerID, err := id.resolve()
			if err != nil {
				return err
			}

			result, err := client.MakeGuess(roomID, playerID, args[0])
			if err != nil {
				return err
			}

			out := NewOutput(cfg.Output, cmd.OutOrStdout())
			out.Print(result)
			return nil
		},
	}

	id.addFlags(cmd)
	return cmd
}

func newGameStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the session room as seen by your player",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cfg.Session.Code == "" {
				return errNoSession
			}

			room, err := client.GetRoom(cfg.Session.Code)
			if err != nil {
				return err
			}
			cfg.Session.fillOwnSecret(&room)

			out := NewOutput(cfg.Output, cmd.OutOrStdout())
			out.Print(room)
			return nil
		},
	}
}
