package assistant

// Static reply blocks. These have no data dependency and no randomness, so
// repeated synthesis returns byte-identical output.

const helpReply = "I'm your AI assistant and I can help you with:\n\n" +
	"💰 **Fees & Payments** - Check pending fees, payment status\n" +
	"🍽️ **Mess & Food** - Today's menu, timings, reviews\n" +
	"📢 **Notices** - Latest announcements and updates\n" +
	"🚪 **Gate Pass** - Apply for leave, check status\n" +
	"🔧 **Complaints** - Report issues, track status\n" +
	"🏠 **Room Info** - Your room details, hostel mates\n" +
	"📚 **Study Help** - Tips, time management, motivation\n" +
	"🏥 **Health** - Emergency contacts, medical help\n" +
	"❓ **App Guide** - How to use features\n\n" +
	"Just ask me anything! I'm here 24/7 to help. 😊"

const healthReply = "🏥 **Health & Medical Assistance**\n\n" +
	"**Emergency Contacts:**\n" +
	"🚑 Ambulance: 108\n" +
	"🏥 Hostel Medical Room: Contact Rector\n" +
	"📞 Rector: Available in Settings\n\n" +
	"**For Medical Issues:**\n" +
	"• Minor issues: Visit hostel medical room\n" +
	"• Serious issues: Call 108 immediately\n" +
	"• Mental health: Reach out to hostel counselor\n\n" +
	"**Feeling unwell?**\n" +
	"1. Inform your rector via complaint/message\n" +
	"2. Apply for medical leave if needed\n" +
	"3. Keep your guardian informed\n\n" +
	"💚 Your health is priority! Don't hesitate to seek help."

const academicReply = "📚 **Study Tips & Academic Support**\n\n" +
	"**Time Management:**\n" +
	"• Create a study schedule and stick to it\n" +
	"• Use the Pomodoro technique (25 min study, 5 min break)\n" +
	"• Prioritize difficult subjects during peak focus hours\n\n" +
	"**Exam Preparation:**\n" +
	"• Start revision at least 2 weeks before exams\n" +
	"• Make summary notes and flashcards\n" +
	"• Practice previous year papers\n" +
	"• Form study groups with hostel mates\n\n" +
	"**Staying Motivated:**\n" +
	"• Set small, achievable goals\n" +
	"• Reward yourself after completing tasks\n" +
	"• Take regular breaks to avoid burnout\n" +
	"• Remember: You've got this! 💪\n\n" +
	"Need help with anything specific? Just ask!"

const socialReply = "🎉 **Social Life & Activities**\n\n" +
	"**Making Friends:**\n" +
	"• Join hostel common areas during free time\n" +
	"• Participate in hostel events and activities\n" +
	"• Be friendly and approachable\n" +
	"• Start conversations in the mess or study rooms\n\n" +
	"**Feeling Lonely?**\n" +
	"• Reach out to your roommates\n" +
	"• Join study groups or hobby clubs\n" +
	"• Attend hostel gatherings\n" +
	"• Talk to the hostel counselor if needed\n\n" +
	"**Fun Activities:**\n" +
	"• Check the Notices section for upcoming events\n" +
	"• Organize game nights with hostel mates\n" +
	"• Explore nearby areas on weekends\n\n" +
	"Remember: Everyone feels this way sometimes. You're not alone! 🤗"

const technicalReply = "💻 **App Usage Guide**\n\n" +
	"**Navigation:**\n" +
	"• Use the sidebar menu to switch between sections\n" +
	"• Dashboard shows your quick overview\n" +
	"• Each section has specific features\n\n" +
	"**Key Features:**\n" +
	"📊 **Dashboard**: Overview of your hostel life\n" +
	"💰 **Fees**: View and pay pending fees\n" +
	"🍽️ **Mess**: Menu, reviews, feedback\n" +
	"📢 **Notices**: Important announcements\n" +
	"🚪 **Gate Pass**: Apply for leave\n" +
	"🔧 **Complaints**: Report issues\n" +
	"💬 **Chat**: Message your rector\n" +
	"🤖 **AI Assistant**: That's me! Ask anything\n\n" +
	"**Need specific help?** Just tell me which feature you want to learn about!"

const weatherReply = "I don't have access to live weather data, but I can suggest:\n\n" +
	"☀️ Check your phone's weather app\n" +
	"🌐 Visit weather.com or similar sites\n" +
	"📱 Ask your hostel mates about current conditions\n\n" +
	"Is there anything else I can help you with?"

const generalReply = "I'm not quite sure about that, but I'm here to help! 🤔\n\n" +
	"I can assist you with:\n" +
	"• Checking your fees and payments\n" +
	"• Today's mess menu\n" +
	"• Recent notices and announcements\n" +
	"• Applying for gate pass/leave\n" +
	"• Filing complaints\n" +
	"• Study tips and motivation\n" +
	"• Health and emergency info\n\n" +
	"Try asking me something like:\n" +
	"\"What's for lunch?\" or \"Do I have pending fees?\" or \"How do I apply for leave?\"\n\n" +
	"What would you like to know? 😊"
