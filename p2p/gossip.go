package p2p

import (
	"context"
	"fmt"

	pubsub "github.com/libp2p/go-libp2p-pubsub"
	pb "github.com/libp2p/go-libp2p-pubsub/pb"
	"go.uber.org/zap"

	"github.com/sun-23/go-multiuser/hash"
)

func msgID(msg *pb.Message) string {
	digest := hash.Sum([]byte(msg.GetTopic()), msg.Data)
	return string(digest[:])
}

func gossipOptions(cfg Config) []pubsub.Option {
	return []pubsub.Option{
		pubsub.WithFloodPublish(true),
		pubsub.WithMessageIdFn(msgID),
		pubsub.WithNoAuthor(),
		pubsub.WithMessageSignaturePolicy(pubsub.StrictNoSign),
		pubsub.WithMaxMessageSize(cfg.MaxMessageSize),
		pubsub.WithPeerOutboundQueueSize(cfg.OutboundQueue),
	}
}

func (fh *Host) startGossip(ctx context.Context) error {
	ps, err := pubsub.NewGossipSub(ctx, fh.Host, gossipOptions(fh.cfg)...)
	if err != nil {
		return fmt.Errorf("failed to initialize gossipsub instance: %w", err)
	}
	topic, err := ps.Join(fh.topicName())
	if err != nil {
		return fmt.Errorf("join topic %s: %w", fh.topicName(), err)
	}
	sub, err := topic.Subscribe()
	if err != nil {
		topic.Close()
		return fmt.Errorf("subscribe to topic %s: %w", fh.topicName(), err)
	}
	fh.topic = topic
	fh.eg.Go(func() error {
		defer sub.Cancel()
		for {
			msg, err := sub.Next(ctx)
			if err != nil {
				return nil
			}
			if msg.ReceivedFrom == fh.ID() {
				continue
			}
			receivedMessages.WithLabelValues(bestEffortLabel).Inc()
			fh.deliver(ctx, msg.Data, msg.ReceivedFrom)
		}
	})
	return nil
}

func (fh *Host) publish(data []byte) {
	if err := fh.topic.Publish(context.Background(), data); err != nil {
		fh.logger.Debug("failed to publish", zap.Error(err))
		droppedMessages.WithLabelValues(reasonPublish).Inc()
		return
	}
	sentMessages.WithLabelValues(bestEffortLabel).Inc()
}
