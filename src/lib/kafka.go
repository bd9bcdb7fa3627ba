package lib

import (
	"context"
	"encoding/json"
	"log"
	"os"

	"github.com/confluentinc/confluent-kafka-go/kafka"
)

func GetKafkaProducerConfig(clientId string) kafka.ConfigMap {
	return kafka.ConfigMap{
		"bootstrap.servers": os.Getenv("KAFKA_BROKER"),
		"client.id":         clientId,
		"acks":              "all",
	}
}

// KafkaProduceMessage serializes the payload and hands it to the broker.
// Callers on the booking path run this fire-and-forget; a produce failure is
// logged and never rolls back the transition that triggered it.
func KafkaProduceMessage(clientId string, topic string, payload map[string]any) error {
	cfg := GetKafkaProducerConfig(clientId)
	p, err := kafka.NewProducer(&cfg)
	if err != nil {
		log.Printf("Error creating producer for topic %s: %s\n", topic, err.Error())
		return err
	}
	value, err := json.Marshal(payload)
	if err != nil {
		log.Printf("Error serializing payload for topic %s: %s\n", topic, err.Error())
		return err
	}
	err = p.Produce(&kafka.Message{
		TopicPartition: kafka.TopicPartition{Topic: &topic, Partition: kafka.PartitionAny},
		Value:          value,
	}, nil)
	if err != nil {
		log.Printf("Error producing to topic %s: %s\n", topic, err.Error())
		return err
	}
	return nil
}

// KafkaConsume polls the topic until the process exits and invokes handler
// for every message body. It runs on the caller's goroutine.
func KafkaConsume(groupId string, topics []string, handler func(value []byte)) {
	master, err := kafka.NewConsumer(&kafka.ConfigMap{
		"bootstrap.servers": os.Getenv("KAFKA_BROKER"),
		"group.id":          groupId,
		"auto.offset.reset": "smallest",
		"retry.backoff.ms":  100,
	})
	if err != nil {
		log.Printf("Error creating consumer %s: %s\n", groupId, err.Error())
		return
	}
	defer master.Close()
	if err := master.SubscribeTopics(topics, nil); err != nil {
		log.Printf("Error subscribing %s to %v: %s\n", groupId, topics, err.Error())
		return
	}
	log.Printf("[%s]: waiting for messages...\n", groupId)
	for {
		ev := master.Poll(100)
		switch e := ev.(type) {
		case *kafka.Message:
			handler(e.Value)
		case kafka.Error:
			log.Printf("[%s] consumer error: %v\n", groupId, e)
			if e.IsFatal() {
				return
			}
		}
	}
}

func KafkaCreateTopics(topics ...string) ([]kafka.TopicResult, error) {
	a, err := kafka.NewAdminClient(&kafka.ConfigMap{
		"bootstrap.servers": os.Getenv("KAFKA_BROKER"),
	})
	if err != nil {
		log.Printf("Error on AdminClient: %s\n", err.Error())
		return nil, err
	}
	topicsDef := []kafka.TopicSpecification{}
	for _, topic := range topics {
		topicsDef = append(topicsDef, kafka.TopicSpecification{
			Topic:         topic,
			NumPartitions: 10,
		})
	}
	result, err := a.CreateTopics(context.Background(), topicsDef)
	if err != nil {
		log.Printf("Error creating topics: %s\n", err.Error())
		return nil, err
	}
	return result, nil
}
