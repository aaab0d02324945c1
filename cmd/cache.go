package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/texhnolyzze/MyCommonUtilsLib/internal/blobstore"
	"github.com/texhnolyzze/MyCommonUtilsLib/internal/lru"
	"github.com/texhnolyzze/MyCommonUtilsLib/internal/telemetry"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Store blobs and read them through the LRU cache",
	Long: `Blobs live in the store named by cache.store (sqlite://, bolt://, or
memory://). Reads go through a byte-bounded LRU cache of cache.capacity_bytes,
so repeated keys in one invocation are served from memory.`,
}

var cachePutCmd = &cobra.Command{
	Use:   "put KEY FILE",
	Short: "Store the contents of FILE (or - for stdin) under KEY",
	Args:  cobra.ExactArgs(2),
	RunE:  runCachePut,
}

var cacheGetCmd = &cobra.Command{
	Use:   "get KEY...",
	Short: "Write the blobs stored under each KEY to stdout",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runCacheGet,
}

var cacheKeysCmd = &cobra.Command{
	Use:   "keys",
	Short: "List stored keys",
	Args:  cobra.NoArgs,
	RunE:  runCacheKeys,
}

var cacheRmCmd = &cobra.Command{
	Use:   "rm KEY...",
	Short: "Delete stored blobs",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runCacheRm,
}

func init() {
	cacheCmd.PersistentFlags().String("store", "", "store URL (default from config)")
	cacheCmd.AddCommand(cachePutCmd, cacheGetCmd, cacheKeysCmd, cacheRmCmd)
	rootCmd.AddCommand(cacheCmd)
}

// openStore opens the store chosen by --store or the config.
func openStore(ctx context.Context, cmd *cobra.Command, s *session) (blobstore.Store, error) {
	url := s.cfg.Cache.Store
	if v, _ := cmd.Flags().GetString("store"); v != "" {
		url = v
	}
	store, err := blobstore.Open(ctx, url)
	if err != nil {
		return nil, err
	}
	s.log.Debug("opened blob store", "url", url)
	return store, nil
}

func runCachePut(cmd *cobra.Command, args []string) error {
	s, err := newSession(cmd)
	if err != nil {
		return err
	}
	defer s.Close()
	ctx := cmd.Context()

	var data []byte
	if args[1] == "-" {
		data, err = io.ReadAll(cmd.InOrStdin())
	} else {
		data, err = os.ReadFile(args[1])
	}
	if err != nil {
		return fmt.Errorf("cache: read %s: %w", args[1], err)
	}

	store, err := openStore(ctx, cmd, s)
	if err != nil {
		return err
	}
	defer store.Close()
	if err := store.Put(ctx, args[0], data); err != nil {
		return err
	}
	s.log.Info("stored blob", "key", args[0], "bytes", len(data))
	return nil
}

func runCacheGet(cmd *cobra.Command, args []string) error {
	s, err := newSession(cmd)
	if err != nil {
		return err
	}
	defer s.Close()
	ctx := cmd.Context()

	store, err := openStore(ctx, cmd, s)
	if err != nil {
		return err
	}
	defer store.Close()

	cache, err := lru.New(s.cfg.Cache.CapacityBytes, blobstore.NewLoader(store))
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	for _, key := range args {
		if err := getThrough(ctx, cache, s, out, key); err != nil {
			return err
		}
	}
	st := cache.Stats()
	s.log.Debug("cache stats", "hits", st.Hits, "misses", st.Misses, "evictions", st.Evictions, "bytes", cache.Size())
	return nil
}

// getThrough reads key through cache, writes it to out, and records
// whether it was a hit.
func getThrough(ctx context.Context, cache *lru.Cache[string, blobstore.Blob], s *session, out io.Writer, key string) error {
	_, hit := cache.Peek(key)
	blob, err := cache.Get(ctx, key)
	if emitErr := s.tel.Emit(telemetry.Event{Kind: telemetry.KindCacheGet, Data: map[string]any{
		"key": key, "hit": hit, "bytes": len(blob), "ok": err == nil,
	}}); emitErr != nil {
		s.log.Warn("telemetry write failed", "err", emitErr)
	}
	if err != nil {
		return err
	}
	s.log.Debug("cache get", "key", key, "hit", hit, "bytes", len(blob))
	_, err = out.Write(blob)
	return err
}

func runCacheKeys(cmd *cobra.Command, _ []string) error {
	s, err := newSession(cmd)
	if err != nil {
		return err
	}
	defer s.Close()
	ctx := cmd.Context()

	store, err := openStore(ctx, cmd, s)
	if err != nil {
		return err
	}
	defer store.Close()
	keys, err := store.Keys(ctx)
	if err != nil {
		return err
	}
	for _, k := range keys {
		fmt.Fprintln(cmd.OutOrStdout(), k)
	}
	return nil
}

func runCacheRm(cmd *cobra.Command, args []string) error {
	s, err := newSession(cmd)
	if err != nil {
		return err
	}
	defer s.Close()
	ctx := cmd.Context()

	store, err := openStore(ctx, cmd, s)
	if err != nil {
		return err
	}
	defer store.Close()
	for _, key := range args {
		if err := store.Delete(ctx, key); err != nil {
			return err
		}
	}
	return nil
}
