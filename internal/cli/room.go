package cli

import (
	"errors"

	"github.com/spf13/cobra"
)

func newRoomCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "room",
		Short: "Room management commands",
	}

	cmd.AddCommand(newRoomCreateCmd())
	cmd.AddCommand(newRoomGetCmd())
	cmd.AddCommand(newRoomJoinCmd())

	return cmd
}

func newRoomCreateCmd() *cobra.Command {
	var password, username string

	cmd := &cobra.Command{
		Use:   "create <code>",
		Short: "Create a new room and become its host",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			room, err := client.CreateRoom(args[0], password, username)
			if err != nil {
				return err
			}

			if len(room.Players) == 0 || room.Players[0] == nil {
				return errors.New("server returned a room without a host")
			}
			host := room.Players[0]
			if err := cfg.SaveSession(Session{
				RoomID:   room.ID,
				PlayerID: host.ID,
				Code:     room.Code,
				Username: host.Username,
			}); err != nil {
				return err
			}

			out := NewOutput(cfg.Output, cmd.OutOrStdout())
			out.Print(room)
			return nil
		},
	}

	cmd.Flags().StringVar(&password, "password", "", "Room password (required)")
	cmd.Flags().StringVar(&username, "username", "", "Your username (required)")
	_ = cmd.MarkFlagRequired("password")
	_ = cmd.MarkFlagRequired("username")

	return cmd
}

func newRoomGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get [code]",
		Short: "Get room details (defaults to the session room)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			code := cfg.Session.Code
			if len(args) == 1 {
				code = args[0]
			}
			if code == "" {
				return errNoSession
			}

			room, err := client.GetRoom(code)
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

func newRoomJoinCmd() *cobra.Command {
	var password, username string

	cmd := &cobra.Command{
		Use:   "join <code>",
		Short: "Join an existing room",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := client.JoinRoom(args[0], password, username)
			if err != nil {
				return err
			}

			if err := cfg.SaveSession(Session{
				RoomID:   result.RoomID,
				PlayerID: result.PlayerID,
				Code:     result.Code,
				Username: username,
			}); err != nil {
				return err
			}

			out := NewOutput(cfg.Output, cmd.OutOrStdout())
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&password, "password", "", "Room password (required)")
	cmd.Flags().StringVar(&username, "username", "", "Your username (required)")
	_ = cmd.MarkFlagRequired("password")
	_ = cmd.MarkFlagRequired("username")

	return cmd
}
